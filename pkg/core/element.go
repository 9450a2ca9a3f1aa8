// Package core defines the accessibility backend capability the engine is
// built against. A backend exposes the running application's accessibility
// tree as typed, named elements and supports input on them.
// Implementations: bridge (HTTP agent), fake (in-memory, for tests).
// The engine treats this purely as a query/command interface.
package core

// MouseButton selects which button a click uses.
type MouseButton string

// MouseButton values.
const (
	ButtonLeft  MouseButton = "left"
	ButtonRight MouseButton = "right"
)

// Element is one node of the accessibility tree: a window, button, tab, etc.
// An Element is a capability object owned by the backend's current tree
// snapshot. It is valid only until the next tree mutation and must be
// re-resolved from criteria rather than cached across polling iterations.
type Element interface {
	// ControlType returns the element's type tag ("Button", "Tab", "Window", ...).
	ControlType() string

	// Name returns the accessible name, or "" if the element has none.
	Name() string

	// Text returns the element's display text. For many controls this equals
	// the accessible name; for edit fields it is the current content.
	Text() string

	// ClassName returns the backend-specific widget class, or "".
	ClassName() string

	// AutomationID returns the stable automation identifier, or "".
	AutomationID() string

	Bounds() Bounds
	Visible() bool
	Focused() bool

	// Children enumerates child elements in tree order. With recursive set,
	// all descendants are returned in pre-order; otherwise only direct
	// children.
	Children(recursive bool) ([]Element, error)

	// Click invokes a single click with the given button.
	Click(button MouseButton) error

	// DoubleClick invokes a double click with the left button.
	DoubleClick() error

	// SetText replaces the element's text content (edit fields).
	SetText(text string) error
}

// Bounds represents element position and size in screen coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
