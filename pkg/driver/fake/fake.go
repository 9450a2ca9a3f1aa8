// Package fake provides an in-memory accessibility tree implementing
// core.Backend, for tests and smoke runs without a real application. The
// tree is scriptable: mutations can be scheduled after a delay to simulate
// an asynchronously updating UI, and clicks can trigger arbitrary tree
// changes.
package fake

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/core"
)

// Node is one element of the fake tree. Fields are exported for test
// construction; access during a run goes through the element wrapper under
// the driver lock.
type Node struct {
	Type      string      `json:"type"`
	Name      string      `json:"name,omitempty"`
	TextValue string      `json:"text,omitempty"`
	Class     string      `json:"class,omitempty"`
	AutoID    string      `json:"automationId,omitempty"`
	Rect      core.Bounds `json:"bounds"`
	Hidden    bool        `json:"hidden,omitempty"`
	HasFocus  bool        `json:"focused,omitempty"`
	Children  []*Node     `json:"children,omitempty"`

	// OnClick runs under the driver lock when the node is clicked, so it
	// can mutate the tree (replace windows, remove menus, ...).
	OnClick func(d *Driver) `json:"-"`
}

// NewNode builds a node with children.
func NewNode(controlType, name string, children ...*Node) *Node {
	return &Node{Type: controlType, Name: name, Children: children}
}

// Driver is the fake backend.
type Driver struct {
	mu         sync.Mutex
	windows    []*Node
	running    bool
	connected  bool
	connectErr error
}

// New creates a fake backend whose tree starts with the given top-level
// windows.
func New(windows ...*Node) *Driver {
	return &Driver{windows: windows, running: true}
}

// FailConnect makes Connect return err.
func (d *Driver) FailConnect(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectErr = err
}

// Mutate applies fn to the tree under the driver lock.
func (d *Driver) Mutate(fn func(d *Driver)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d)
}

// MutateAfter schedules fn to run against the tree after delay, simulating
// UI state that materializes later.
func (d *Driver) MutateAfter(delay time.Duration, fn func(d *Driver)) {
	time.AfterFunc(delay, func() { d.Mutate(fn) })
}

// SetWindows replaces the top-level windows. Callers inside Mutate use this
// to simulate the application respawning its top-level window.
func (d *Driver) SetWindows(windows ...*Node) {
	d.windows = windows
}

// Windows returns the current top-level nodes. Only valid inside Mutate.
func (d *Driver) Windows() []*Node { return d.windows }

// Connect implements core.Backend.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.connectErr != nil {
		return d.connectErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.connected = true
	return nil
}

// TopWindows implements core.Backend.
func (d *Driver) TopWindows() ([]core.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, errors.New("not connected")
	}
	out := make([]core.Element, 0, len(d.windows))
	for _, w := range d.windows {
		out = append(out, &element{node: w, driver: d})
	}
	return out, nil
}

// WaitForIdle implements core.Backend; the fake tree is always idle.
func (d *Driver) WaitForIdle(time.Duration) error { return nil }

// Screenshot implements core.Backend with a minimal valid PNG (1x1 pixel).
func (d *Driver) Screenshot() ([]byte, error) {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}, nil
}

// Hierarchy implements core.Backend.
func (d *Driver) Hierarchy() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return json.MarshalIndent(d.windows, "", "  ")
}

// ProcessRunning implements core.Backend.
func (d *Driver) ProcessRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Close implements core.Backend.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
	d.connected = false
	return nil
}
