// Package input turns command-line text into the validated number and
// optional deadline consumed by the factorization engine.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUsage is returned when the argument count is wrong.
	ErrUsage = errors.New("usage: factor <INTEGER> [TIMEOUT]")

	// ErrInvalidTimeout is returned for a timeout that is malformed, zero
	// or negative.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Reason classifies why a number failed to parse.
type Reason int

const (
	ReasonInvalidDigit Reason = iota
	ReasonEmpty
	ReasonTooLarge
)

// NumberError describes a number argument that could not be parsed.
type NumberError struct {
	Input  string
	Reason Reason
}

func (e *NumberError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "InvalidNumber: Must include numbers (0..=9)"
	case ReasonTooLarge:
		return fmt.Sprintf("InvalidNumber: Too large\nMaxInt: %d", uint64(math.MaxUint64))
	default:
		return "InvalidNumber: Only use (0..=9) and comma OR underscore"
	}
}

// Args is a validated invocation.
type Args struct {
	Number     uint64
	Timeout    time.Duration
	HasTimeout bool
}

// ParseArgs validates one number argument followed by an optional timeout.
func ParseArgs(args []string) (Args, error) {
	if len(args) < 1 || len(args) > 2 {
		return Args{}, ErrUsage
	}

	n, err := ParseNumber(args[0])
	if err != nil {
		return Args{}, err
	}
	a := Args{Number: n}

	if len(args) == 2 {
		d, err := ParseTimeout(args[1])
		if err != nil {
			return Args{}, err
		}
		a.Timeout = d
		a.HasTimeout = true
	}
	return a, nil
}

// ParseNumber parses a decimal unsigned 64-bit integer. Grouping separators
// are removed first: every comma if the text has any, otherwise every
// underscore. Mixing both is rejected.
func ParseNumber(s string) (uint64, error) {
	raw := s
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, "_", "")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	if s == "" {
		return 0, &NumberError{Input: raw, Reason: ReasonEmpty}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &NumberError{Input: raw, Reason: ReasonTooLarge}
	}
	if err != nil {
		return 0, &NumberError{Input: raw, Reason: ReasonInvalidDigit}
	}
	return n, nil
}

// ParseTimeout parses a positive timeout given either as whole seconds
// ("5") or as a Go duration ("1500ms").
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	var d time.Duration
	if secs, err := strconv.ParseUint(s, 10, 32); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w %q: want whole seconds or a duration like 1500ms", ErrInvalidTimeout, s)
		}
		d = parsed
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be greater than zero", ErrInvalidTimeout, s)
	}
	return d, nil
}
