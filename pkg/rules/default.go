// Package rules supplies the default first-order rule set used by the
// server and CLIs when no other rule set is configured. Unlike the rest
// of the engine, these rule bodies are not ported from anywhere: no
// concrete rule data exists in the retrieved reference material, only
// the universe's function/relation tables and the domain's defining
// invariant (a cell's value equals the number of distinct committed
// values on its ray). Each rule below is derived directly from that
// invariant and is checked both before and after optimisation, exactly
// as any rule loaded from the DSL frontend would be.
package rules

import (
	"fmt"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/optimize"
	"arrows-engine/internal/ruledsl"
	"arrows-engine/internal/typecheck"
)

// definition pairs a rule's DSL source with its complexity tier.
type definition struct {
	name       string
	complexity int
	src        string
}

var foDefinitions = []definition{
	{
		name:       "dead-end-is-zero",
		complexity: 1,
		src:        "exists p (next(p) = OOB ^ ahead(p) = 0) => set(p, 0)",
	},
	{
		name:       "single-cell-ray-forces-one",
		complexity: 1,
		src:        "exists p (ahead(p) = 1) => set(p, 1)",
	},
	{
		name:       "value-bounded-above-by-ray-length",
		complexity: 1,
		src:        "exists p (max_candidate(p) > ahead(p)) => exclude(p, >ahead(p))",
	},
	{
		name:       "value-bounded-below-by-committed-distinct",
		complexity: 2,
		src:        "exists p (min_candidate(p) < sees_distinct(p)) => exclude(p, <sees_distinct(p))",
	},
	{
		name:       "value-bounded-above-by-reachable-distinct",
		complexity: 2,
		src:        "exists p (max_candidate(p) > sees_distinct_candidates(p)) => exclude(p, >sees_distinct_candidates(p))",
	},
	{
		name:       "exact-value-when-ray-resolved",
		complexity: 2,
		src:        "exists p (ahead_free(p) = 0 ^ val(p) = nil) => set(p, sees_distinct(p))",
	},
}

// Default builds the standard rule set: the FO rules above, each parsed,
// optimised, and type-checked before and after optimisation (per the
// optimiser's invariant), plus one BacktrackRule for the deductions the
// FO rules above cannot reach directly. Returns an error if any rule
// fails to parse or type-check — a rule set that doesn't check out is
// never returned half-built.
func Default() ([]logic.Rule, error) {
	tables := typecheck.StandardTables()

	out := make([]logic.Rule, 0, len(foDefinitions)+1)
	for _, def := range foDefinitions {
		rule, err := ruledsl.ParseFORule(def.name, def.complexity, def.src)
		if err != nil {
			return nil, fmt.Errorf("rules: parsing %q: %w", def.name, err)
		}
		if err := typecheck.CheckRule(rule, tables); err != nil {
			return nil, fmt.Errorf("rules: %q failed to type-check before optimisation: %w", def.name, err)
		}
		optimized := optimize.OptimizeRule(rule)
		if err := typecheck.CheckRule(optimized, tables); err != nil {
			return nil, fmt.Errorf("rules: %q failed to type-check after optimisation: %w", def.name, err)
		}
		out = append(out, optimized)
	}

	out = append(out, logic.BacktrackRule{
		Name:              "bounded-hypothesis",
		Complexity:        10,
		RuleDepth:         2,
		MaxRuleComplexity: 2,
	})

	return out, nil
}
