package generator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"arrows-engine/internal/logic"
	"arrows-engine/internal/puzzle"
	"arrows-engine/pkg/constants"
)

// BatchStats aggregates rejection counts across every attempt in a batch,
// by reason and, for constraint rejections, by constraint name.
type BatchStats struct {
	TotalAttempts        int
	Accepted             int
	RejectionsByReason   map[RejectionReason]int
	RejectionsByConstraint map[string]int
}

func newBatchStats() BatchStats {
	return BatchStats{
		RejectionsByReason:     make(map[RejectionReason]int),
		RejectionsByConstraint: make(map[string]int),
	}
}

func (s *BatchStats) record(a Attempt) {
	s.TotalAttempts++
	if a.Accepted {
		s.Accepted++
		return
	}
	s.RejectionsByReason[a.Rejection]++
	if a.Rejection == constants.RejectConstraint && a.RejectedByConstraint != "" {
		s.RejectionsByConstraint[a.RejectedByConstraint]++
	}
}

func (s *BatchStats) merge(other BatchStats) {
	s.TotalAttempts += other.TotalAttempts
	s.Accepted += other.Accepted
	for k, v := range other.RejectionsByReason {
		s.RejectionsByReason[k] += v
	}
	for k, v := range other.RejectionsByConstraint {
		s.RejectionsByConstraint[k] += v
	}
}

// GenerateMany runs a worker pool of cfg.NJobs goroutines, each performing
// independent single-attempt generations, every attempt with its own PRNG
// seeded from its worker's PRNG, until count
// puzzles have been accepted or cfg.MaxAttempts is exhausted (-1 =
// unlimited). Each attempt is bounded by cfg.TimeoutSeconds of wall clock;
// a timed-out attempt is counted as a timeout rejection and its worker is
// abandoned rather than joined, so a pathological rule set cannot stall
// the batch.
func GenerateMany(cfg Config, rules []logic.Rule, count int, seed int64) ([]*puzzle.Puzzle, BatchStats, error) {
	workers := cfg.NJobs
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	stats := newBatchStats()
	var accepted []*puzzle.Puzzle

	attemptsRequested := 0
	var attemptsMu sync.Mutex
	budgetExceeded := func() bool {
		attemptsMu.Lock()
		defer attemptsMu.Unlock()
		if cfg.MaxAttempts >= 0 && attemptsRequested >= cfg.MaxAttempts {
			return true
		}
		attemptsRequested++
		return false
	}

	done := make(chan struct{})
	var once sync.Once
	closeDone := func() { once.Do(func() { close(done) }) }

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(workerID)))
			for {
				select {
				case <-done:
					return
				default:
				}

				mu.Lock()
				reachedCount := len(accepted) >= count
				mu.Unlock()
				if reachedCount {
					closeDone()
					return
				}
				if budgetExceeded() {
					closeDone()
					return
				}

				attemptRng := rand.New(rand.NewSource(rng.Int63()))
				attempt, err := runAttemptWithTimeout(cfg, rules, attemptRng)
				if err != nil {
					continue
				}

				mu.Lock()
				stats.record(attempt)
				if attempt.Accepted && len(accepted) < count {
					accepted = append(accepted, attempt.Puzzle)
				}
				reachedCount = len(accepted) >= count
				mu.Unlock()
				if reachedCount {
					closeDone()
					return
				}
			}
		}(w)
	}
	wg.Wait()

	return accepted, stats, nil
}

// runAttemptWithTimeout runs one GenerateOne call, converting it into a
// timeout rejection if it does not finish within cfg.TimeoutSeconds. The
// goroutine running past its deadline is abandoned (not cancelled
// cooperatively): pathological rule sets must not stall the batch.
func runAttemptWithTimeout(cfg Config, rules []logic.Rule, rng *rand.Rand) (Attempt, error) {
	if cfg.TimeoutSeconds <= 0 {
		return GenerateOne(cfg, rules, rng)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	resultCh := make(chan Attempt, 1)
	errCh := make(chan error, 1)
	go func() {
		a, err := GenerateOne(cfg, rules, rng)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- a
	}()

	select {
	case a := <-resultCh:
		return a, nil
	case err := <-errCh:
		return Attempt{}, err
	case <-ctx.Done():
		return Attempt{Rejection: constants.RejectTimeout}, nil
	}
}
