// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WriteConfig writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteConfig(tb testing.TB, name, contents string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		tb.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Near reports whether got is within eps of want.
func Near(got, want, eps float64) bool {
	return math.Abs(got-want) <= eps
}

// AssertNear fails the test when got is further than eps from want.
func AssertNear(tb testing.TB, label string, got, want, eps float64) {
	tb.Helper()
	if !Near(got, want, eps) {
		tb.Errorf("%s = %v, expected %v (±%v)", label, got, want, eps)
	}
}
