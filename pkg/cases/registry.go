// Package cases provides reusable, parameterized test cases and the registry
// that instantiates them from a suite definition. Scenario authors compose
// these (or their own suite.Case implementations) into an ordered list.
package cases

import (
	"fmt"
	"sort"

	"github.com/proflab-dev/e2e-runner/pkg/config"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
)

// Factory creates a zero-value case ready for parameter decoding.
type Factory func() suite.Case

var registry = map[string]Factory{}

// Register adds a case type to the registry. Later registrations of the
// same name win, so embedding applications can override built-ins.
func Register(name string, f Factory) {
	registry[name] = f
}

// Registered returns the sorted names of all registered case types.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates one case from its spec.
func Build(spec config.CaseSpec) (suite.Case, error) {
	f, ok := registry[spec.Type]
	if !ok {
		return nil, fmt.Errorf("unknown case type %q (registered: %v)", spec.Type, Registered())
	}
	c := f()
	if err := spec.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding %q case: %w", spec.Type, err)
	}
	return c, nil
}

// BuildAll instantiates the ordered case list of a suite definition.
func BuildAll(specs []config.CaseSpec) ([]suite.Case, error) {
	out := make([]suite.Case, 0, len(specs))
	for i, spec := range specs {
		c, err := Build(spec)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i+1, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func init() {
	Register("clickControl", func() suite.Case { return &ClickControl{} })
	Register("typeText", func() suite.Case { return &TypeText{} })
	Register("expectControl", func() suite.Case { return &ExpectControl{} })
	Register("expectNoControl", func() suite.Case { return &ExpectNoControl{} })
	Register("expectControlCount", func() suite.Case { return &ExpectControlCount{} })
	Register("endSession", func() suite.Case { return &EndSession{} })
	Register("closeApplication", func() suite.Case { return &CloseApplication{} })
}
