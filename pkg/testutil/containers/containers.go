//go:build integration

// Package containers starts throwaway infrastructure for integration tests.
// Every helper registers its own cleanup on t.
package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// abort terminates a half-started container and fails the test.
func abort(t *testing.T, c testcontainers.Container, format string, args ...any) {
	t.Helper()
	if c != nil {
		_ = c.Terminate(context.Background())
	}
	t.Fatalf(format, args...)
}

func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Cleanup(func() {
		_ = c.Terminate(context.Background())
	})
}
