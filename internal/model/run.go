package model

import (
	"time"

	"github.com/seantiz/factor/internal/factor"
)

// Run records a single factorization attempt as reported to callers.
type Run struct {
	ID        string         `json:"id"`
	Input     uint64         `json:"input"`
	Outcome   factor.Outcome `json:"outcome"`
	Complete  bool           `json:"complete"`
	Factors   []uint64       `json:"factors,omitempty"`
	Partial   []uint64       `json:"partial,omitempty"`
	Error     string         `json:"error,omitempty"`
	TimeoutUS *int64         `json:"timeout_us,omitempty"`
	ElapsedUS int64          `json:"elapsed_us"`
	// Interrupted is set when a timed-out run was stopped by cancellation
	// before its own deadline.
	Interrupted bool      `json:"interrupted,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Successful reports whether the run concluded with a prime or composite
// answer.
func (r *Run) Successful() bool {
	return r.Outcome == factor.OutcomePrime || r.Outcome == factor.OutcomeComposite
}
