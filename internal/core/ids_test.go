package core

import (
	"fmt"
	"testing"
)

// sequentialIDs replaces NewID with a deterministic generator for the test.
func sequentialIDs(t *testing.T, prefix string) {
	t.Helper()
	orig := NewID
	n := 0
	NewID = func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	t.Cleanup(func() { NewID = orig })
}
