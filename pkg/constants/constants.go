package constants

// Generator thresholds (fractions of rows*cols unless noted).
const (
	OutwardThreshold          = 0.10
	MaxGuessesFraction        = 0.15
	MaxModificationsFraction  = 0.10
	MinGuessOrModificationCap = 3
)

// Solver limits.
const (
	// MaxSolverSteps bounds the number of rule invocations in a single
	// Solve call as a last-resort guard against a misbehaving rule set; well-formed rule sets
	// always terminate long before this is reached.
	MaxSolverSteps = 10000
)

// API version, reported by the health endpoint.
const APIVersion = "0.1.0"

// DefaultPort is used when the PORT environment variable is unset.
const DefaultPort = "8080"

// Rejection reasons recorded in generator.BatchStats.
const (
	RejectConstraint        = "constraint"
	RejectNoSolution        = "no_solution"
	RejectExcessiveGuessing = "excessive_guessing"
	RejectExcessiveRotation = "excessive_rotation"
	RejectTimeout           = "timeout"
)
