package main

import (
	"fmt"
	"os"

	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/solver"
	"arrows-engine/pkg/rules"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: solve <puzzle-file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	p, err := puzzle.FromString(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing puzzle text: %v\n", err)
		os.Exit(1)
	}

	ruleSet, err := rules.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building rule set: %v\n", err)
		os.Exit(1)
	}

	result, err := solver.Solve(ruleSet, p, solver.SolveOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error solving: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Steps: %d\n", len(result.Steps))
	fmt.Printf("Max complexity used: %d\n", result.MaxComplexityUsed)
	for i, step := range result.Steps {
		fmt.Printf("  %3d. %s (complexity %d)\n", i+1, step.RuleName, step.RuleComplexity)
		for _, line := range step.ContradictionTrace {
			fmt.Printf("       %s\n", line)
		}
	}
	if result.Status == solver.NoSolution && result.ContradictionLocation != nil {
		loc := *result.ContradictionLocation
		fmt.Printf("Contradiction at (%d,%d)\n", loc.Row, loc.Col)
	}

	fmt.Println()
	fmt.Print(result.Puzzle.ToString())
}
