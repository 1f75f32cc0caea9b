// Command benchmark runs the E20 benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv           Output results in CSV format (default: human-readable)
//	-json          Output results as JSON
//	-cache         Cache spec "S,A,B" or "S1,A1,B1,S2,A2,B2"
//	-cache-config  Path to a cache hierarchy JSON file
//	-no-cache      Disable cache simulation
//
// Example:
//
//	# Run all benchmarks against the default two-level hierarchy
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv -cache 8,2,2 > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/e20sim/benchmarks"
	"github.com/sarchlab/e20sim/timing/cache"
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	cacheSpec := flag.String("cache", "", "Cache spec S,A,B[,S,A,B]")
	cacheConfig := flag.String("cache-config", "", "Path to cache hierarchy JSON file")
	noCache := flag.Bool("no-cache", false, "Disable cache simulation")
	flag.Parse()

	// Configure harness
	config := benchmarks.DefaultConfig()
	config.Output = os.Stdout

	switch {
	case *noCache:
		config.Cache = nil
	case *cacheConfig != "":
		hc, err := cache.LoadConfig(*cacheConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading cache config: %v\n", err)
			os.Exit(1)
		}
		config.Cache = hc
	case *cacheSpec != "":
		hc, err := cache.ParseSpec(*cacheSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing cache spec: %v\n", err)
			os.Exit(1)
		}
		config.Cache = hc
	}

	// Create harness and add benchmarks
	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

	// Print configuration
	if !*csvOutput && !*jsonOutput {
		fmt.Println("E20 Benchmark Harness")
		fmt.Println("=====================")
		if config.Cache == nil || len(config.Cache.Levels) == 0 {
			fmt.Println("Cache: disabled")
		} else {
			for i, l := range config.Cache.Levels {
				fmt.Printf("%s: size %d, associativity %d, blocksize %d, rows %d\n",
					cache.LevelName(i), l.Size, l.Associativity, l.BlockSize, l.Rows())
			}
		}
		fmt.Println("")
	}

	// Run benchmarks
	results := harness.RunAll()

	// Output results
	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if r.Err != "" {
			os.Exit(1)
		}
	}
}
