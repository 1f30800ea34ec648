package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/seantiz/factor/internal/factor"
	"github.com/seantiz/factor/internal/model"
)

// Engine runs factorization attempts.
type Engine struct {
	logger         *slog.Logger
	defaultTimeout time.Duration
	maxTimeout     time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultTimeout bounds requests that carry no timeout of their own.
// Without it such requests search until they conclude.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.defaultTimeout = d
	}
}

// WithMaxTimeout caps every effective timeout at d.
func WithMaxTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.maxTimeout = d
	}
}

// NewEngine creates a new factorization engine.
func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request is a validated factorization request.
type Request struct {
	Number     uint64
	Timeout    time.Duration
	HasTimeout bool
}

// Timeout returns the deadline that applies to req, and false when the
// search is unbounded.
func (e *Engine) Timeout(req Request) (time.Duration, bool) {
	d, ok := req.Timeout, req.HasTimeout
	if !ok && e.defaultTimeout > 0 {
		d, ok = e.defaultTimeout, true
	}
	if ok && e.maxTimeout > 0 && d > e.maxTimeout {
		d = e.maxTimeout
	}
	if !ok && e.maxTimeout > 0 {
		d, ok = e.maxTimeout, true
	}
	return d, ok
}

// Run factors req.Number and reports the attempt. The returned error is the
// one produced by the search (*factor.DomainError or *factor.TimeoutError);
// the Run is populated in every case.
func (e *Engine) Run(ctx context.Context, req Request) (*model.Run, error) {
	start := time.Now()
	run := &model.Run{
		ID:        model.NewID(start),
		Input:     req.Number,
		StartedAt: start.UTC(),
	}

	var opts []factor.Option
	timeout, bounded := e.Timeout(req)
	if bounded {
		opts = append(opts, factor.WithDeadline(timeout))
		us := timeout.Microseconds()
		run.TimeoutUS = &us
	}

	res, err := factor.TrialContext(ctx, req.Number, opts...)

	elapsed := time.Since(start)
	run.FinishedAt = time.Now().UTC()
	run.ElapsedUS = elapsed.Microseconds()
	run.Outcome = factor.Classify(res, err)

	var te *factor.TimeoutError
	switch {
	case err == nil:
		run.Complete = true
		run.Factors = res.Factors
	case errors.As(err, &te):
		run.Partial = te.Partial
		run.Interrupted = te.Cause != nil
		run.Error = err.Error()
		partialFactors.Observe(float64(len(te.Partial)))
	default:
		run.Error = err.Error()
	}

	runsTotal.WithLabelValues(string(run.Outcome)).Inc()
	searchDuration.WithLabelValues(string(run.Outcome)).Observe(elapsed.Seconds())

	attrs := []any{
		"run_id", run.ID,
		"input", req.Number,
		"outcome", run.Outcome,
		"elapsed_ms", elapsed.Milliseconds(),
	}
	switch {
	case run.Successful():
		e.logger.Debug("factorization finished", append(attrs, "factors", len(run.Factors))...)
	case run.Outcome == factor.OutcomeTimeout:
		e.logger.Info("factorization timed out", append(attrs, "partial", len(run.Partial), "timeout", timeout)...)
	default:
		e.logger.Info("factorization rejected", append(attrs, "error", err)...)
	}

	return run, err
}

// MaxTimeout returns the cap applied to every deadline, or zero when
// deadlines are uncapped.
func (e *Engine) MaxTimeout() time.Duration {
	return e.maxTimeout
}
