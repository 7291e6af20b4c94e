package testutil

import (
	"context"
	"testing"
	"time"
)

// TestContext returns a context that is cancelled when the test ends, so
// goroutines started by the test shut down with it.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// TestContextWithTimeout is TestContext with an upper bound on how long the
// test's operations may run.
func TestContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
