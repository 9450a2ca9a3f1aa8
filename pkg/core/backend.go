package core

import (
	"context"
	"time"
)

// Backend is the connection to the application under test. The suite owns
// exactly one Backend for its lifetime: Connect during launch, Close during
// teardown.
type Backend interface {
	// Connect attaches to (or launches) the application. It blocks until the
	// application is reachable or ctx expires.
	Connect(ctx context.Context) error

	// TopWindows returns the application's current top-level windows in
	// z-order. The set changes when the application tears down and respawns
	// top-level windows, so callers must re-query after such operations.
	TopWindows() ([]Element, error)

	// WaitForIdle blocks until the application has processed pending UI
	// events, or the timeout elapses.
	WaitForIdle(timeout time.Duration) error

	// Screenshot captures the current screen as PNG.
	Screenshot() ([]byte, error)

	// Hierarchy captures the full accessibility tree as JSON.
	Hierarchy() ([]byte, error)

	// ProcessRunning reports whether the application process is still alive.
	ProcessRunning() bool

	// Close terminates the application (best effort) and releases the
	// connection. Safe to call more than once.
	Close() error
}
