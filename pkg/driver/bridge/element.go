package bridge

import (
	"fmt"

	"github.com/proflab-dev/e2e-runner/pkg/core"
)

// node is one element of the agent's tree snapshot.
type node struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Name         string      `json:"name,omitempty"`
	Text         string      `json:"text,omitempty"`
	Class        string      `json:"class,omitempty"`
	AutomationID string      `json:"automationId,omitempty"`
	Bounds       core.Bounds `json:"bounds"`
	Visible      bool        `json:"visible"`
	Focused      bool        `json:"focused,omitempty"`
	Children     []*node     `json:"children,omitempty"`
}

// element adapts a snapshot node to core.Element. Structure reads come from
// the snapshot; input goes back through the agent by node ID, which the
// agent rejects when the node has since disappeared from the live tree.
type element struct {
	node   *node
	client *client
}

func (e *element) ControlType() string  { return e.node.Type }
func (e *element) Name() string         { return e.node.Name }
func (e *element) ClassName() string    { return e.node.Class }
func (e *element) AutomationID() string { return e.node.AutomationID }
func (e *element) Bounds() core.Bounds  { return e.node.Bounds }
func (e *element) Visible() bool        { return e.node.Visible }
func (e *element) Focused() bool        { return e.node.Focused }

func (e *element) Text() string {
	if e.node.Text != "" {
		return e.node.Text
	}
	return e.node.Name
}

func (e *element) Children(recursive bool) ([]core.Element, error) {
	var out []core.Element
	var walk func(n *node)
	walk = func(n *node) {
		for _, child := range n.Children {
			out = append(out, &element{node: child, client: e.client})
			if recursive {
				walk(child)
			}
		}
	}
	walk(e.node)
	return out, nil
}

func (e *element) Click(button core.MouseButton) error {
	return e.client.post(fmt.Sprintf("/element/%s/click", e.node.ID),
		map[string]string{"button": string(button)}, nil)
}

func (e *element) DoubleClick() error {
	return e.client.post(fmt.Sprintf("/element/%s/click", e.node.ID),
		map[string]interface{}{"button": string(core.ButtonLeft), "count": 2}, nil)
}

func (e *element) SetText(text string) error {
	return e.client.post(fmt.Sprintf("/element/%s/text", e.node.ID),
		map[string]string{"text": text}, nil)
}
