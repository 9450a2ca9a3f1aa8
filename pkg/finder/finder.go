package finder

import (
	"errors"
	"fmt"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// Finder resolves elements against the live tree. The default scope is
// re-resolved on every polling tick: the application may tear down and
// respawn windows at any time, so a cached root could silently go stale.
type Finder struct {
	root func() (core.Element, error)
	opts wait.Options
}

// New creates a Finder. root supplies the default search scope (usually the
// session's current top-level window) and is called once per polling tick.
func New(root func() (core.Element, error), opts wait.Options) *Finder {
	return &Finder{root: root, opts: opts}
}

// WithOptions returns a Finder with the same scope and different wait options.
func (f *Finder) WithOptions(opts wait.Options) *Finder {
	return &Finder{root: f.root, opts: opts}
}

// Find resolves exactly one element matching the criteria. Zero matches are
// retried until the wait budget is exhausted, then a *NotFoundError is
// returned. More than one match with AllowDuplicates unset fails immediately
// with *AmbiguousMatchError; with AllowDuplicates set the first match in
// tree order is returned.
func (f *Finder) Find(c Criteria) (core.Element, error) {
	m, err := newMatcher(c)
	if err != nil {
		return nil, err
	}

	var found core.Element
	err = wait.For(func() (bool, error) {
		matches, err := f.resolve(m)
		if err != nil {
			return false, err
		}
		if len(matches) == 0 {
			return false, nil
		}
		if len(matches) > 1 && !c.AllowDuplicates {
			return false, &AmbiguousMatchError{Criteria: c, Count: len(matches)}
		}
		found = matches[0]
		return true, nil
	}, f.opts)
	if err != nil {
		var te *wait.TimeoutError
		if errors.As(err, &te) {
			return nil, &NotFoundError{Criteria: c, Scope: f.scopeDescription(c), Timeout: f.opts.Timeout}
		}
		return nil, err
	}
	return found, nil
}

// FindAll resolves every element matching the criteria, in tree order. It
// waits for at least one match; if none appears within the wait budget an
// empty slice is returned rather than an error, so absence stays a valid,
// checkable outcome.
func (f *Finder) FindAll(c Criteria) ([]core.Element, error) {
	m, err := newMatcher(c)
	if err != nil {
		return nil, err
	}

	var found []core.Element
	err = wait.For(func() (bool, error) {
		matches, err := f.resolve(m)
		if err != nil {
			return false, err
		}
		if len(matches) == 0 {
			return false, nil
		}
		found = matches
		return true, nil
	}, f.opts)
	if err != nil {
		var te *wait.TimeoutError
		if errors.As(err, &te) {
			return []core.Element{}, nil
		}
		return nil, err
	}
	return found, nil
}

// resolve performs one pass over the current tree snapshot.
func (f *Finder) resolve(m *matcher) ([]core.Element, error) {
	scope := m.crit.Scope
	if scope == nil {
		root, err := f.root()
		if err != nil {
			// The top-level window may be mid-respawn; retry next tick.
			if wait.Transient(err) {
				return nil, nil
			}
			return nil, err
		}
		scope = root
	}

	children, err := scope.Children(m.crit.Recursive())
	if err != nil {
		// Enumeration races against tree mutation; treat as not-ready.
		return nil, nil
	}

	var matches []core.Element
	for _, el := range children {
		if m.matches(el) {
			matches = append(matches, el)
		}
	}
	return matches, nil
}

func (f *Finder) scopeDescription(c Criteria) string {
	if c.Scope == nil {
		return "top-level window"
	}
	return fmt.Sprintf("%s %q", c.Scope.ControlType(), c.Scope.Name())
}
