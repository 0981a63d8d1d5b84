//go:build cgo

package main

import "testing"

func TestExports(t *testing.T) {
	if got := add(2, 3); got != 5 {
		t.Fatalf("add(2, 3) = %d, want 5", got)
	}
	if got := subtract(5, 3); got != 2 {
		t.Fatalf("subtract(5, 3) = %d, want 2", got)
	}
	if got := add(-1, 1); got != 0 {
		t.Fatalf("add(-1, 1) = %d, want 0", got)
	}
}
