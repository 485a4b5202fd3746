package testutil

import (
	"testing"
	"time"
)

// Eventually polls cond until it holds or the deadline passes. Watch
// pushes are delivered on a background goroutine, so tests that assert on
// mirrored state need to wait for the loop to catch up.
func Eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met: %s", msg)
}
