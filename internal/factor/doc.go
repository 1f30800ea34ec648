// Package factor implements trial-division prime factorization over the
// unsigned 64-bit domain. A search may be bounded by a wall-clock deadline
// or a context; both are polled once per odd candidate divisor, and an
// interrupted search reports the factors it had already extracted.
package factor
