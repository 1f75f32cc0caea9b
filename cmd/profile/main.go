// Package main provides a profiling wrapper for e20sim to identify
// emulator and cache-model bottlenecks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/e20sim/emu"
	"github.com/sarchlab/e20sim/loader"
	"github.com/sarchlab/e20sim/timing/cache"
)

var (
	cacheSpec   = flag.String("cache", "", "Cache spec S,A,B[,S,A,B] to model during the run")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	iterations  = flag.Int("iterations", 1, "number of times to run the program")
	instruction = flag.Uint64("max-instr", 1000000, "max instructions per run (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	hc, err := cache.ParseSpec(*cacheSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cache spec: %v\n", err)
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Words: %d\n", prog.Len())

	start := time.Now()

	var instrCount uint64
	for i := 0; i < *iterations; i++ {
		n, err := runOnce(prog, hc)
		instrCount += n
		if err != nil && !errors.Is(err, emu.ErrStepLimit) {
			fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
			os.Exit(1)
		}
	}

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Runs: %d\n", *iterations)
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
}

// runOnce runs the program from a fresh machine and returns the number of
// instructions executed.
func runOnce(prog *loader.Program, hc *cache.HierarchyConfig) (uint64, error) {
	opts := []emu.EmulatorOption{emu.WithMaxSteps(*instruction)}

	if len(hc.Levels) > 0 {
		hierarchy, err := cache.NewHierarchy(hc)
		if err != nil {
			return 0, err
		}
		opts = append(opts, emu.WithObserver(hierarchy))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(prog.Memory())

	err := emulator.Run()

	return emulator.InstructionCount(), err
}
