// Package arith holds the native integer operations exposed by every binding
// surface.
//
// Both operations are pure and total. Results that do not fit in an int wrap
// around following Go's two's-complement arithmetic.
package arith

// Add returns i + j.
func Add(i, j int) int {
	return i + j
}

// Subtract returns i - j.
func Subtract(i, j int) int {
	return i - j
}
