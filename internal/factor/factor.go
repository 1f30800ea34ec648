package factor

import (
	"context"
	"errors"
	"math/bits"
	"time"
)

// Outcome names the four ways a factorization attempt can end.
type Outcome string

const (
	OutcomePrime       Outcome = "prime"
	OutcomeComposite   Outcome = "composite"
	OutcomeDomainError Outcome = "domain_error"
	OutcomeTimeout     Outcome = "timeout"
)

// Result is a concluded factorization. Factors is nil when N is prime and
// otherwise holds every prime factor of N with multiplicity, ascending.
type Result struct {
	N       uint64
	Factors []uint64
	Elapsed time.Duration
}

// Prime reports whether N was found to be prime.
func (r Result) Prime() bool {
	return len(r.Factors) == 0
}

// Option configures a single search.
type Option func(*options)

type options struct {
	deadline    time.Duration
	hasDeadline bool
	now         func() time.Time
}

// WithDeadline bounds the search to d of wall-clock time, measured from the
// moment the search begins. A non-positive d expires at the first candidate.
func WithDeadline(d time.Duration) Option {
	return func(o *options) {
		o.deadline = d
		o.hasDeadline = true
	}
}

func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Trial factors n by trial division.
//
// It returns a *DomainError for 0 and 1 and a *TimeoutError when a deadline
// set with WithDeadline elapses first. Any other return is a Result.
func Trial(n uint64, opts ...Option) (Result, error) {
	return TrialContext(context.Background(), n, opts...)
}

// TrialContext is Trial with the search additionally stopped when ctx is
// done. The context is polled at the same point as the deadline, once per
// odd candidate, so a stop never lands in the middle of dividing out a
// factor.
func TrialContext(ctx context.Context, n uint64, opts ...Option) (Result, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if n == 0 || n == 1 {
		return Result{}, &DomainError{N: n}
	}

	start := o.now()
	if n == 2 {
		return Result{N: n, Elapsed: o.now().Sub(start)}, nil
	}

	rem := n
	var list []uint64
	for rem&1 == 0 {
		rem >>= 1
		list = append(list, 2)
	}

	for f := uint64(3); squareAtMost(f, rem); f += 2 {
		if err := o.interrupted(ctx, start); err != nil {
			err.N = n
			err.Partial = list
			return Result{}, err
		}
		for rem%f == 0 {
			list = append(list, f)
			rem /= f
		}
	}

	elapsed := o.now().Sub(start)
	if len(list) == 0 {
		return Result{N: n, Elapsed: elapsed}, nil
	}
	if rem > 1 {
		list = append(list, rem)
	}
	return Result{N: n, Factors: list, Elapsed: elapsed}, nil
}

// interrupted returns a TimeoutError without N or Partial set when the
// search must stop.
func (o *options) interrupted(ctx context.Context, start time.Time) *TimeoutError {
	if err := ctx.Err(); err != nil {
		return &TimeoutError{Deadline: o.deadline, Elapsed: o.now().Sub(start), Cause: err}
	}
	if !o.hasDeadline {
		return nil
	}
	if elapsed := o.now().Sub(start); elapsed >= o.deadline {
		return &TimeoutError{Deadline: o.deadline, Elapsed: elapsed}
	}
	return nil
}

// squareAtMost reports whether f*f <= n. A square that does not fit in 64
// bits is larger than every n.
func squareAtMost(f, n uint64) bool {
	hi, lo := bits.Mul64(f, f)
	return hi == 0 && lo <= n
}

// Product multiplies factors together, reporting false if the product
// overflows 64 bits. The empty product is 1.
func Product(factors []uint64) (uint64, bool) {
	p := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(p, f)
		if hi != 0 {
			return 0, false
		}
		p = lo
	}
	return p, true
}

// Classify maps the return values of Trial to an Outcome.
func Classify(res Result, err error) Outcome {
	switch {
	case errors.Is(err, ErrDomain):
		return OutcomeDomainError
	case errors.Is(err, ErrTimeout):
		return OutcomeTimeout
	case err != nil:
		return ""
	case res.Prime():
		return OutcomePrime
	default:
		return OutcomeComposite
	}
}
