package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"arrows-engine/internal/generator"
	"arrows-engine/pkg/rules"
)

func main() {
	count := flag.Int("n", 10, "Number of puzzles to generate")
	rows := flag.Int("rows", 5, "Grid rows")
	cols := flag.Int("cols", 5, "Grid cols")
	diagonals := flag.Bool("diagonals", false, "Allow diagonal arrow directions")
	maxComplexity := flag.Int("max-complexity", 0, "Maximum rule complexity to use (0 = unlimited)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: num CPUs)")
	maxAttempts := flag.Int("max-attempts", -1, "Attempt budget across the whole batch (-1 = unlimited)")
	timeoutSeconds := flag.Int("timeout", 0, "Per-attempt wall-clock timeout in seconds (0 = none)")
	seed := flag.Int64("seed", 1, "PRNG seed")
	output := flag.String("o", "puzzles", "Output directory for puzzle text files")
	flag.Parse()

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	ruleSet, err := rules.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building rule set: %v\n", err)
		os.Exit(1)
	}

	cfg := generator.Config{
		Rows:           *rows,
		Cols:           *cols,
		AllowDiagonals: *diagonals,
		MaxAttempts:    *maxAttempts,
		NJobs:          *workers,
		TimeoutSeconds: *timeoutSeconds,
	}
	if *maxComplexity > 0 {
		cfg.MaxComplexity = maxComplexity
	}

	fmt.Printf("Generating %d puzzle(s) on a %dx%d grid with %d workers...\n", *count, *rows, *cols, *workers)
	start := time.Now()

	puzzles, stats, err := generator.GenerateMany(cfg, ruleSet, *count, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating puzzles: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Printf("Accepted %d/%d requested in %v (%d attempts total)\n", len(puzzles), *count, elapsed, stats.TotalAttempts)
	if len(stats.RejectionsByReason) > 0 {
		fmt.Println("Rejections by reason:")
		for reason, n := range stats.RejectionsByReason {
			fmt.Printf("  %s: %d\n", reason, n)
		}
	}
	if len(stats.RejectionsByConstraint) > 0 {
		fmt.Println("Rejections by constraint:")
		for name, n := range stats.RejectionsByConstraint {
			fmt.Printf("  %s: %d\n", name, n)
		}
	}

	if err := os.MkdirAll(*output, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory %s: %v\n", *output, err)
		os.Exit(1)
	}
	for i, p := range puzzles {
		path := fmt.Sprintf("%s/puzzle_%04d.txt", *output, i)
		if err := os.WriteFile(path, []byte(p.ToString()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Wrote %d puzzle file(s) to %s\n", len(puzzles), *output)
}
