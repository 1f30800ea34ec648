// Command factor prints the prime factorization of a 64-bit unsigned
// integer using trial division, optionally bounded by a timeout.
//
// Usage:
//
//	factor <INTEGER> [TIMEOUT]
//	factor serve
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
