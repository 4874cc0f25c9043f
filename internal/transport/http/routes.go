// Package http is the HTTP transport surface: a thin gin layer over the
// solver and generator packages.
package http

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"arrows-engine/internal/generator"
	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/internal/solver"
	"arrows-engine/pkg/constants"
)

var validate = validator.New()

// RegisterRoutes wires /health, /api/solve and /api/generate against the
// given rule set (shared, read-only across requests).
func RegisterRoutes(r *gin.Engine, rules []logic.Rule) {
	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/solve", solveHandler(rules))
		api.POST("/generate", generateHandler(rules))
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

// SolveRequest is the body of POST /api/solve.
type SolveRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

func solveHandler(rules []logic.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := puzzle.FromString(req.Puzzle)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid puzzle text: " + err.Error()})
			return
		}

		result, err := solver.Solve(rules, p, solver.SolveOptions{})
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, solverResultJSON(result))
	}
}

func solverResultJSON(result solver.SolverResult) gin.H {
	steps := make([]gin.H, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, gin.H{
			"rule_name":           step.RuleName,
			"rule_complexity":     step.RuleComplexity,
			"contradiction_trace": step.ContradictionTrace,
		})
	}
	body := gin.H{
		"status":              result.Status.String(),
		"max_complexity_used": result.MaxComplexityUsed,
		"counts_by_rule":      result.CountsByRule,
		"steps":               steps,
		"puzzle":              result.Puzzle.ToString(),
	}
	if result.ContradictionLocation != nil {
		body["contradiction_location"] = gin.H{
			"row": result.ContradictionLocation.Row,
			"col": result.ContradictionLocation.Col,
		}
	}
	return body
}

// GenerateRequest is the body of POST /api/generate — the generator's
// configuration, as JSON.
type GenerateRequest struct {
	Rows                int      `json:"rows" validate:"required,min=1"`
	Cols                int      `json:"cols" validate:"required,min=1"`
	AllowDiagonals      bool     `json:"allow_diagonals"`
	MaxComplexity       *int     `json:"max_complexity"`
	Count               int      `json:"count" validate:"required,min=1,max=1000"`
	MaxAttempts         int      `json:"max_attempts"`
	PrefilledCellsCount *int     `json:"prefilled_cells_count"`
	NJobs               int      `json:"n_jobs" validate:"min=0"`
	TimeoutSeconds      int      `json:"timeout_seconds" validate:"min=0"`
	ConstraintNames     []string `json:"constraints"`
}

func generateHandler(rules []logic.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cfg := generator.Config{
			Rows:                req.Rows,
			Cols:                req.Cols,
			AllowDiagonals:      req.AllowDiagonals,
			MaxComplexity:       req.MaxComplexity,
			MaxAttempts:         req.MaxAttempts,
			PrefilledCellsCount: req.PrefilledCellsCount,
			NJobs:               req.NJobs,
			TimeoutSeconds:      req.TimeoutSeconds,
		}
		if cfg.MaxAttempts == 0 {
			cfg.MaxAttempts = -1
		}

		puzzles, stats, err := generator.GenerateMany(cfg, rules, req.Count, rand.Int63())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		texts := make([]string, 0, len(puzzles))
		for _, p := range puzzles {
			texts = append(texts, p.ToString())
		}

		c.JSON(http.StatusOK, gin.H{
			"puzzles": texts,
			"stats": gin.H{
				"total_attempts":           stats.TotalAttempts,
				"accepted":                stats.Accepted,
				"rejections_by_reason":     stats.RejectionsByReason,
				"rejections_by_constraint": stats.RejectionsByConstraint,
			},
		})
	}
}
