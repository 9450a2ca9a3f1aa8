package fake

import (
	"errors"

	"github.com/proflab-dev/e2e-runner/pkg/core"
)

// element adapts a Node to core.Element. Reads and input take the driver
// lock so scheduled mutations never observe a half-applied tree.
type element struct {
	node   *Node
	driver *Driver
}

func (e *element) ControlType() string  { return e.node.Type }
func (e *element) ClassName() string    { return e.node.Class }
func (e *element) AutomationID() string { return e.node.AutoID }

func (e *element) Name() string {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	return e.node.Name
}

func (e *element) Text() string {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	if e.node.TextValue != "" {
		return e.node.TextValue
	}
	return e.node.Name
}

func (e *element) Bounds() core.Bounds { return e.node.Rect }

func (e *element) Visible() bool {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	return !e.node.Hidden
}

func (e *element) Focused() bool {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	return e.node.HasFocus
}

func (e *element) Children(recursive bool) ([]core.Element, error) {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()

	var out []core.Element
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			out = append(out, &element{node: child, driver: e.driver})
			if recursive {
				walk(child)
			}
		}
	}
	walk(e.node)
	return out, nil
}

func (e *element) Click(core.MouseButton) error {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	if e.node.Hidden {
		return errors.New("element not visible")
	}
	if e.node.OnClick != nil {
		e.node.OnClick(e.driver)
	}
	return nil
}

func (e *element) DoubleClick() error {
	return e.Click(core.ButtonLeft)
}

func (e *element) SetText(text string) error {
	e.driver.mu.Lock()
	defer e.driver.mu.Unlock()
	e.node.TextValue = text
	return nil
}
