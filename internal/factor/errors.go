package factor

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDomain is matched by errors returned for inputs that have no prime
	// factorization (0 and 1).
	ErrDomain = errors.New("neither prime nor composite")

	// ErrTimeout is matched by errors returned when a search stopped before
	// it could conclude.
	ErrTimeout = errors.New("factorization interrupted")
)

// DomainError reports an input outside the factorable domain.
type DomainError struct {
	N uint64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%d is neither prime nor composite", e.N)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// TimeoutError reports a search that was stopped by its deadline or by its
// context. Partial holds the factors extracted before the stop, in
// non-decreasing order; it is nil when none had been found.
type TimeoutError struct {
	N        uint64
	Deadline time.Duration // zero when only a context bounded the search
	Elapsed  time.Duration
	Partial  []uint64
	Cause    error // context error, nil when the deadline option fired
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("factoring %d: %v after %s", e.N, e.Cause, e.Elapsed)
	}
	return fmt.Sprintf("factoring %d: deadline of %s exceeded", e.N, e.Deadline)
}

// Is reports whether target is ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
