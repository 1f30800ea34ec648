// Package report renders factorization runs for people and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/seantiz/factor/internal/factor"
	"github.com/seantiz/factor/internal/model"
)

// Process exit codes for each outcome.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitTimeout = 2
)

// Options controls text rendering.
type Options struct {
	// Elapsed appends the search duration on its own line.
	Elapsed bool
	// Group prints numbers with thousands separators.
	Group bool
}

// Text writes the human-readable form of run to w.
func Text(w io.Writer, run *model.Run, opts Options) error {
	num := plain
	if opts.Group {
		num = grouped
	}

	var b strings.Builder
	switch run.Outcome {
	case factor.OutcomePrime:
		fmt.Fprintf(&b, "Prime: %s\n", num(run.Input))
	case factor.OutcomeComposite:
		fmt.Fprintf(&b, "Found: %s\n", list(run.Factors, num))
	case factor.OutcomeDomainError:
		fmt.Fprintf(&b, "InvalidNumber: %s is neither prime nor composite\n", num(run.Input))
	case factor.OutcomeTimeout:
		b.WriteString("Timeout: ")
		if run.Interrupted || run.TimeoutUS == nil {
			fmt.Fprintf(&b, "interrupted after %s", elapsed(run))
		} else {
			fmt.Fprintf(&b, "exceeded %s", time.Duration(*run.TimeoutUS)*time.Microsecond)
		}
		if len(run.Partial) == 0 {
			b.WriteString("; no factors found\n")
		} else {
			fmt.Fprintf(&b, "; found so far: %s\n", list(run.Partial, num))
		}
	default:
		fmt.Fprintf(&b, "Error: %s\n", run.Error)
	}

	if opts.Elapsed {
		fmt.Fprintf(&b, "Elapsed: %s\n", elapsed(run))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes run to w as indented JSON.
func JSON(w io.Writer, run *model.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return nil
}

// ExitCode maps an outcome to the process exit status.
func ExitCode(o factor.Outcome) int {
	switch o {
	case factor.OutcomePrime, factor.OutcomeComposite:
		return ExitOK
	case factor.OutcomeTimeout:
		return ExitTimeout
	default:
		return ExitInvalid
	}
}

func elapsed(run *model.Run) time.Duration {
	return time.Duration(run.ElapsedUS) * time.Microsecond
}

func list(factors []uint64, num func(uint64) string) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = num(f)
	}
	return strings.Join(parts, " ")
}

func plain(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func grouped(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}
