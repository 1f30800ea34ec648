// Package engine runs single factorization attempts on behalf of the CLI and
// the HTTP server. It resolves the effective deadline, runs the trial
// division search synchronously on the caller's goroutine, and reports the
// attempt as a model.Run while recording logs and metrics.
package engine
