// Package finder resolves UI elements from declarative search criteria
// against the live accessibility tree. Zero matches are retried with a
// bounded wait because controls may not exist at query time; unexpected
// duplicates are an error so a blind pick cannot mask a UI regression.
package finder

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/proflab-dev/e2e-runner/pkg/core"
)

// Criteria describes how to find a UI element. Immutable once constructed;
// the With* helpers return modified copies. Name matching modes in
// precedence order: Name (exact), NameContains (substring), Patterns
// (glob-style wildcards, matching if any pattern matches).
type Criteria struct {
	Type            string   `yaml:"type"`
	Name            string   `yaml:"name"`
	NameContains    string   `yaml:"nameContains"`
	Patterns        []string `yaml:"patterns"`
	ClassName       string   `yaml:"className"`
	NoRecurse       bool     `yaml:"noRecurse"`       // only direct children instead of all descendants
	AllowDuplicates bool     `yaml:"allowDuplicates"` // tolerate more than one match

	// Scope restricts the search to the subtree under this element.
	// nil means the session's current top-level window.
	Scope core.Element `yaml:"-"`
}

// UnmarshalYAML allows Criteria to be written as a plain string (exact name)
// or as a mapping.
func (c *Criteria) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Name = node.Value
		return nil
	}

	type plain Criteria
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*c = Criteria(raw)
	return nil
}

// WithScope returns a copy of the criteria scoped under parent.
func (c Criteria) WithScope(parent core.Element) Criteria {
	c.Scope = parent
	return c
}

// Recursive reports whether the search considers all descendants.
func (c Criteria) Recursive() bool { return !c.NoRecurse }

// Describe returns a human-readable rendering used in diagnostics.
func (c Criteria) Describe() string {
	var parts []string
	if c.Type != "" {
		parts = append(parts, fmt.Sprintf("type=%q", c.Type))
	}
	if c.Name != "" {
		parts = append(parts, fmt.Sprintf("name=%q", c.Name))
	}
	if c.NameContains != "" {
		parts = append(parts, fmt.Sprintf("nameContains=%q", c.NameContains))
	}
	if len(c.Patterns) > 0 {
		parts = append(parts, fmt.Sprintf("patterns=%q", strings.Join(c.Patterns, "|")))
	}
	if c.ClassName != "" {
		parts = append(parts, fmt.Sprintf("className=%q", c.ClassName))
	}
	parts = append(parts, fmt.Sprintf("recurse=%v", c.Recursive()))
	return strings.Join(parts, ", ")
}

// matcher is a Criteria with its glob patterns compiled once per resolution.
type matcher struct {
	crit  Criteria
	globs []glob.Glob
}

func newMatcher(c Criteria) (*matcher, error) {
	m := &matcher{crit: c}
	for _, p := range c.Patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid name pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *matcher) matches(el core.Element) bool {
	c := m.crit
	if c.Type != "" && el.ControlType() != c.Type {
		return false
	}
	if c.ClassName != "" && el.ClassName() != c.ClassName {
		return false
	}

	name := el.Name()
	text := el.Text()
	switch {
	case c.Name != "":
		return name == c.Name || text == c.Name
	case c.NameContains != "":
		return strings.Contains(name, c.NameContains) || strings.Contains(text, c.NameContains)
	case len(m.globs) > 0:
		for _, g := range m.globs {
			if g.Match(name) || g.Match(text) {
				return true
			}
		}
		return false
	}
	return true
}
