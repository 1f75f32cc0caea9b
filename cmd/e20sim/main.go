// Package main provides the e20sim command, which runs an E20 machine-code
// file and reports either the final machine state or, when a cache is
// configured, every cache access.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/e20sim/emu"
	"github.com/sarchlab/e20sim/loader"
	"github.com/sarchlab/e20sim/timing/cache"
	"github.com/sarchlab/e20sim/trace"
	"github.com/sarchlab/e20sim/translate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	cacheSpec   string
	cacheConfig string
	maxSteps    uint64
	memWords    int
	showState   bool
	verbose     bool
	filename    string
}

func usage(stderr io.Writer) {
	_, _ = fmt.Fprint(stderr, translate.From("usage %s [-h] [--cache CACHE] filename\n\n", "e20sim"))
	_, _ = fmt.Fprint(stderr, translate.From("Simulate E20 machine\n\n"))
	_, _ = fmt.Fprint(stderr, translate.From("positional arguments:\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  filename    The file containing machine code, typically with .bin suffix\n\n"))
	_, _ = fmt.Fprint(stderr, translate.From("optional arguments:\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -h, --help  show this help message and exit\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  --cache CACHE  Cache configuration: size,associativity,blocksize (for one\n"))
	_, _ = fmt.Fprint(stderr, translate.From("                 cache) or\n"))
	_, _ = fmt.Fprint(stderr, translate.From("                 size,associativity,blocksize,size,associativity,blocksize\n"))
	_, _ = fmt.Fprint(stderr, translate.From("                 (for two caches)\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -cache-config FILE  JSON cache hierarchy, instead of --cache\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -max-steps N   stop after N instructions (0: no limit)\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -mem N         memory words in the final state dump\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -state         print the final state in cache mode too\n"))
	_, _ = fmt.Fprint(stderr, translate.From("  -v             print a run summary to stderr\n"))
}

// parseArgs accepts flags before and after the filename.
func parseArgs(args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("e20sim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.cacheSpec, "cache", "", "")
	fs.StringVar(&opts.cacheConfig, "cache-config", "", "")
	fs.Uint64Var(&opts.maxSteps, "max-steps", 0, "")
	fs.IntVar(&opts.memWords, "mem", trace.DumpWords, "")
	fs.BoolVar(&opts.showState, "state", false, "")
	fs.BoolVar(&opts.verbose, "v", false, "")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	if len(positional) != 1 {
		return nil, errors.New("expected exactly one filename")
	}
	if opts.cacheSpec != "" && opts.cacheConfig != "" {
		return nil, errors.New("--cache and -cache-config are mutually exclusive")
	}
	if opts.memWords < 0 {
		return nil, errors.New("-mem must not be negative")
	}

	opts.filename = positional[0]

	return opts, nil
}

func hierarchyConfig(opts *options) (*cache.HierarchyConfig, error) {
	switch {
	case opts.cacheConfig != "":
		return cache.LoadConfig(opts.cacheConfig)
	case opts.cacheSpec != "":
		return cache.ParseSpec(opts.cacheSpec)
	default:
		return nil, nil
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		usage(stderr)
		return 1
	}

	prog, err := loader.Load(opts.filename)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, translate.From("Error loading program: %s", err.Error()))
		return 1
	}

	hc, err := hierarchyConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, translate.From("Invalid cache config: %s", err.Error()))
		return 1
	}

	reporter := trace.NewReporter(stdout)
	emuOpts := []emu.EmulatorOption{emu.WithMaxSteps(opts.maxSteps)}

	var hierarchy *cache.Hierarchy
	if hc != nil && len(hc.Levels) > 0 {
		hierarchy, err = cache.NewHierarchy(hc)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, translate.From("Invalid cache config: %s", err.Error()))
			return 1
		}

		reporter.Hierarchy(hierarchy)
		hierarchy.AcceptHook(reporter)
		emuOpts = append(emuOpts, emu.WithObserver(hierarchy))
	}

	e := emu.NewEmulator(emuOpts...)
	e.LoadProgram(prog.Memory())

	runErr := e.Run()

	if hierarchy == nil || opts.showState {
		reporter.State(trace.Snapshot(e, opts.memWords))
	}

	if opts.verbose {
		printSummary(stderr, opts.filename, e, hierarchy)
	}

	if err := reporter.Err(); err != nil {
		_, _ = fmt.Fprintln(stderr, translate.From("Error writing output: %s", err.Error()))
		return 1
	}

	if runErr != nil {
		_, _ = fmt.Fprintln(stderr, translate.From("Simulation stopped: %s", runErr.Error()))
		return 1
	}

	return 0
}

// printSummary writes run statistics. Numbers bypass the locale printer.
func printSummary(w io.Writer, path string, e *emu.Emulator, h *cache.Hierarchy) {
	_, _ = fmt.Fprintf(w, "\nProgram: %s\n", path)
	_, _ = fmt.Fprintf(w, "Instructions executed: %d\n", e.InstructionCount())
	_, _ = fmt.Fprintf(w, "Halted: %v\n", e.Halted())

	if h == nil {
		return
	}

	for _, level := range h.Levels() {
		s := level.Stats()
		_, _ = fmt.Fprintf(w, "%s: loads %d, stores %d, hits %d, misses %d, evictions %d\n",
			level.Name(), s.Loads, s.Stores, s.Hits, s.Misses, s.Evictions)
	}
}
