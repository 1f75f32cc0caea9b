// Package translate renders user-facing messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("e20sim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From renders key with args using the printer matched to the host
// locale at startup, falling back to en-US. Pass numbers that belong to a
// fixed output format through fmt instead; the printer groups digits.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
