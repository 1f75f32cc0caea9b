// Package benchmarks provides sample E20 programs and a harness that runs
// them through the emulator and cache hierarchy.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sarchlab/e20sim/emu"
	"github.com/sarchlab/e20sim/timing/cache"
)

// LevelResult holds the statistics of one cache level after a run.
type LevelResult struct {
	Name      string  `json:"name"`
	Loads     uint64  `json:"loads"`
	Stores    uint64  `json:"stores"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	// Instructions is the number of instructions executed, including the
	// final self-jump
	Instructions uint64 `json:"instructions"`

	// Halted is true if the program reached its halt instruction
	Halted bool `json:"halted"`

	// Levels holds per-level cache statistics, L1 first
	Levels []LevelResult `json:"levels,omitempty"`

	// Err describes a failed run or a final-state mismatch
	Err string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Setup prepares memory before the run (e.g., input arrays)
	Setup func(memory *emu.Memory)

	// Program is the E20 machine code, loaded at address 0
	Program []uint16

	// ExpectedRegs lists register values the final state must hold
	ExpectedRegs map[uint8]uint16

	// ExpectedMem lists memory words the final state must hold
	ExpectedMem map[uint16]uint16
}

// Verify compares an emulator's final state against the expectations.
func (b Benchmark) Verify(e *emu.Emulator) error {
	regs := make([]int, 0, len(b.ExpectedRegs))
	for reg := range b.ExpectedRegs {
		regs = append(regs, int(reg))
	}
	sort.Ints(regs)

	for _, reg := range regs {
		want := b.ExpectedRegs[uint8(reg)]
		if got := e.RegFile().ReadReg(uint8(reg)); got != want {
			return fmt.Errorf("$%d = %d, want %d", reg, got, want)
		}
	}

	addrs := make([]int, 0, len(b.ExpectedMem))
	for addr := range b.ExpectedMem {
		addrs = append(addrs, int(addr))
	}
	sort.Ints(addrs)

	for _, addr := range addrs {
		want := b.ExpectedMem[uint16(addr)]
		if got := e.Memory().Read(uint16(addr)); got != want {
			return fmt.Errorf("mem[%d] = %d, want %d", addr, got, want)
		}
	}

	return nil
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Cache is the hierarchy each benchmark runs against; nil or empty
	// disables cache simulation
	Cache *cache.HierarchyConfig

	// MaxSteps bounds each run
	MaxSteps uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration: a small
// two-level hierarchy that makes conflict misses visible.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Cache: &cache.HierarchyConfig{Levels: []cache.Config{
			{Size: 8, Associativity: 1, BlockSize: 2},
			{Size: 32, Associativity: 4, BlockSize: 4},
		}},
		MaxSteps: 1_000_000,
		Output:   os.Stdout,
	}
}

// Harness runs benchmarks and reports their results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{config: config}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll runs every benchmark in the order added.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))
	for _, b := range h.benchmarks {
		results = append(results, h.runBenchmark(b))
	}
	return results
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	opts := []emu.EmulatorOption{emu.WithMaxSteps(h.config.MaxSteps)}

	var hierarchy *cache.Hierarchy
	if h.config.Cache != nil && len(h.config.Cache.Levels) > 0 {
		var err error
		hierarchy, err = cache.NewHierarchy(h.config.Cache)
		if err != nil {
			result.Err = err.Error()
			return result
		}
		opts = append(opts, emu.WithObserver(hierarchy))
	}

	e := emu.NewEmulator(opts...)
	if bench.Setup != nil {
		bench.Setup(e.Memory())
	}
	e.LoadProgram(bench.Program)

	start := time.Now()
	err := e.Run()
	result.WallTime = time.Since(start)

	result.Instructions = e.InstructionCount()
	result.Halted = e.Halted()

	if hierarchy != nil {
		for _, level := range hierarchy.Levels() {
			result.Levels = append(result.Levels, levelResult(level))
		}
	}

	if err == nil {
		err = bench.Verify(e)
	}
	if err != nil {
		result.Err = err.Error()
	}

	return result
}

func levelResult(level *cache.Level) LevelResult {
	stats := level.Stats()
	r := LevelResult{
		Name:      level.Name(),
		Loads:     stats.Loads,
		Stores:    stats.Stores,
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		Evictions: stats.Evictions,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		r.HitRate = float64(stats.Hits) / float64(total)
	}
	return r
}

// PrintResults prints results in human-readable form.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== E20 Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:  %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Halted:       %v\n", r.Halted)

		for _, l := range r.Levels {
			_, _ = fmt.Fprintf(h.config.Output, "  --- %s ---\n", l.Name)
			_, _ = fmt.Fprintf(h.config.Output, "  Loads:     %d\n", l.Loads)
			_, _ = fmt.Fprintf(h.config.Output, "  Stores:    %d\n", l.Stores)
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:      %d\n", l.Hits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:    %d\n", l.Misses)
			_, _ = fmt.Fprintf(h.config.Output, "  Evictions: %d\n", l.Evictions)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate:  %.1f%%\n", 100*l.HitRate)
		}

		if r.Err != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Err)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV prints one row per benchmark and cache level.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,halted,level,loads,stores,hits,misses,evictions,hit_rate")

	for _, r := range results {
		if len(r.Levels) == 0 {
			_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%v,,,,,,,\n",
				r.Name, r.Instructions, r.Halted)
			continue
		}
		for _, l := range r.Levels {
			_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%v,%s,%d,%d,%d,%d,%d,%.3f\n",
				r.Name,
				r.Instructions,
				r.Halted,
				l.Name,
				l.Loads,
				l.Stores,
				l.Hits,
				l.Misses,
				l.Evictions,
				l.HitRate,
			)
		}
	}
}

// PrintJSON prints results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}
	_, err = fmt.Fprintln(h.config.Output, string(data))
	return err
}
