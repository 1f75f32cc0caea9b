// Package main points at the e20sim command, which lives in cmd/e20sim.
package main

import (
	"fmt"
	"io"
	"os"
)

func printPointer(w io.Writer) {
	_, _ = fmt.Fprintln(w, "e20sim: run 'go run ./cmd/e20sim [-h] [--cache CACHE] filename'")
}

func main() {
	printPointer(os.Stderr)
	os.Exit(1)
}
