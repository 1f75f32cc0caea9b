// Package trace formats simulator output: cache configuration, the cache
// access log and the final machine state.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/e20sim/emu"
	"github.com/sarchlab/e20sim/timing/cache"
)

// DumpWords is the number of memory words printed in the final state by
// default.
const DumpWords = 128

// State is the machine state reported at the end of a run.
type State struct {
	PC     uint16
	Regs   [emu.NumRegs]uint16
	Memory []uint16
}

// Snapshot captures an emulator's pc, registers and first words of memory.
func Snapshot(e *emu.Emulator, words int) State {
	return State{
		PC:     e.RegFile().PC,
		Regs:   e.RegFile().Snapshot(),
		Memory: e.Memory().Dump(words),
	}
}

// Reporter writes simulator output to w. It can be attached to a cache
// hierarchy as a hook to log every access as it happens. The first write
// error is kept and later writes are skipped.
type Reporter struct {
	w   io.Writer
	err error
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// CacheConfig prints one line describing a cache level.
func (r *Reporter) CacheConfig(level *cache.Level) {
	c := level.Config()
	r.printf("Cache %s has size %d, associativity %d, blocksize %d, rows %d\n",
		level.Name(), c.Size, c.Associativity, c.BlockSize, level.Rows())
}

// Hierarchy prints the configuration of every level, L1 first.
func (r *Reporter) Hierarchy(h *cache.Hierarchy) {
	for _, level := range h.Levels() {
		r.CacheConfig(level)
	}
}

// Event prints one access log line.
func (r *Reporter) Event(e cache.AccessEvent) {
	r.printf("%-8s pc:%5d\taddr:%5d\trow:%4d\n",
		e.Level+" "+e.Status.String(), e.PC, e.Addr, e.Row)
}

// Func logs cache access events delivered as hooks.
func (r *Reporter) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	if e, ok := ctx.Item.(cache.AccessEvent); ok {
		r.Event(e)
	}
}

// State prints the final pc, every register and the memory dump, eight
// hex words per line.
func (r *Reporter) State(s State) {
	r.printf("Final state:\n")
	r.printf("\tpc=%5d\n", s.PC)

	for reg, value := range s.Regs {
		r.printf("\t$%d=%5d\n", reg, value)
	}

	cr := false
	for i, word := range s.Memory {
		r.printf("%04x ", word)
		cr = true
		if i%8 == 7 {
			r.printf("\n")
			cr = false
		}
	}
	if cr {
		r.printf("\n")
	}
}

// Recorder keeps cache access events in memory.
type Recorder struct {
	Events []cache.AccessEvent
}

// Func records cache access events delivered as hooks.
func (r *Recorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != cache.HookPosAccess {
		return
	}

	if e, ok := ctx.Item.(cache.AccessEvent); ok {
		r.Events = append(r.Events, e)
	}
}
