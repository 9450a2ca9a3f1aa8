package finder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/driver/fake"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

var testOpts = wait.Options{Timeout: 200 * time.Millisecond, Interval: 10 * time.Millisecond}

func newTestTree(t *testing.T) (*fake.Driver, *Finder) {
	t.Helper()
	d := fake.New(
		fake.NewNode("Window", "Main",
			fake.NewNode("Group", "RightTabWidget",
				fake.NewNode("Tab", "",
					fake.NewNode("TabItem", "Functions"),
					fake.NewNode("TabItem", "Live"),
				),
			),
			fake.NewNode("Group", "EmptyPane"),
			fake.NewNode("Button", "OK"),
			fake.NewNode("Button", "Cancel"),
			fake.NewNode("Edit", "Filter"),
		),
	)
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	f := New(func() (core.Element, error) {
		windows, err := d.TopWindows()
		if err != nil {
			return nil, err
		}
		return windows[0], nil
	}, testOpts)
	return d, f
}

func TestFind_SingleMatch(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantName string
	}{
		{
			name:     "by type and exact name",
			criteria: Criteria{Type: "Button", Name: "OK"},
			wantName: "OK",
		},
		{
			name:     "by name contains",
			criteria: Criteria{Type: "Group", NameContains: "TabWidget"},
			wantName: "RightTabWidget",
		},
		{
			name:     "by glob pattern",
			criteria: Criteria{Type: "TabItem", Patterns: []string{"Func*"}},
			wantName: "Functions",
		},
		{
			name:     "by pattern alternation",
			criteria: Criteria{Type: "TabItem", Patterns: []string{"NoSuch*", "Liv?"}},
			wantName: "Live",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, f := newTestTree(t)
			start := time.Now()
			el, err := f.Find(tt.criteria)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if el.Name() != tt.wantName {
				t.Errorf("got element %q, want %q", el.Name(), tt.wantName)
			}
			if elapsed := time.Since(start); elapsed >= testOpts.Timeout {
				t.Errorf("single match took the full timeout (%v)", elapsed)
			}
		})
	}
}

func TestFind_NotFoundAfterTimeout(t *testing.T) {
	_, f := newTestTree(t)
	start := time.Now()
	_, err := f.Find(Criteria{Type: "Button", Name: "Missing"})

	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
	if elapsed := time.Since(start); elapsed < testOpts.Timeout {
		t.Errorf("gave up after %v, before the %v timeout", elapsed, testOpts.Timeout)
	}
	if !strings.Contains(err.Error(), `name="Missing"`) {
		t.Errorf("error does not carry the attempted name: %v", err)
	}
	if !wait.Transient(err) {
		t.Error("NotFoundError should be transient for enclosing waits")
	}
}

func TestFind_ScopedNotFoundCarriesCriteria(t *testing.T) {
	// A tab searched inside a never-populated container times out and the
	// diagnostic names both the attempted type and name.
	_, f := newTestTree(t)
	pane, err := f.Find(Criteria{Type: "Group", Name: "EmptyPane"})
	if err != nil {
		t.Fatalf("resolving scope: %v", err)
	}

	_, err = f.Find(Criteria{Type: "Tab", Name: "Functions"}.WithScope(pane))
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("got %v, want *NotFoundError", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, `name="Functions"`) || !strings.Contains(msg, `type="Tab"`) {
		t.Errorf("error does not carry the attempted criteria: %v", msg)
	}
	if !strings.Contains(msg, "EmptyPane") {
		t.Errorf("error does not carry the searched scope: %v", msg)
	}
}

func TestFind_AmbiguousMatch(t *testing.T) {
	_, f := newTestTree(t)
	start := time.Now()
	_, err := f.Find(Criteria{Type: "Button"})

	var ame *AmbiguousMatchError
	if !errors.As(err, &ame) {
		t.Fatalf("got %v, want *AmbiguousMatchError", err)
	}
	if ame.Count != 2 {
		t.Errorf("got count %d, want 2", ame.Count)
	}
	if elapsed := time.Since(start); elapsed >= testOpts.Timeout {
		t.Errorf("ambiguity burned the full timeout (%v) instead of failing fast", elapsed)
	}
}

func TestFind_AllowDuplicatesPicksFirstInTreeOrder(t *testing.T) {
	_, f := newTestTree(t)
	el, err := f.Find(Criteria{Type: "Button", AllowDuplicates: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.Name() != "OK" {
		t.Errorf("got %q, want first match %q", el.Name(), "OK")
	}
}

func TestFind_ElementAppearsLater(t *testing.T) {
	d, f := newTestTree(t)
	d.MutateAfter(50*time.Millisecond, func(d *fake.Driver) {
		win := d.Windows()[0]
		win.Children = append(win.Children, fake.NewNode("Button", "Late"))
	})

	el, err := f.Find(Criteria{Type: "Button", Name: "Late"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el.Name() != "Late" {
		t.Errorf("got %q, want %q", el.Name(), "Late")
	}
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		wantNames []string
	}{
		{
			name:      "all matches in tree order",
			criteria:  Criteria{Type: "TabItem"},
			wantNames: []string{"Functions", "Live"},
		},
		{
			name:      "zero matches is an empty result, not an error",
			criteria:  Criteria{Type: "CheckBox"},
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, f := newTestTree(t)
			els, err := f.FindAll(tt.criteria)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(els) != len(tt.wantNames) {
				t.Fatalf("got %d elements, want %d", len(els), len(tt.wantNames))
			}
			for i, el := range els {
				if el.Name() != tt.wantNames[i] {
					t.Errorf("element %d: got %q, want %q", i, el.Name(), tt.wantNames[i])
				}
			}
		})
	}
}

func TestFind_NonRecursiveSearchesDirectChildrenOnly(t *testing.T) {
	_, f := newTestTree(t)

	// TabItems are grandchildren of the window, so a direct-children search
	// must not see them.
	els, err := f.FindAll(Criteria{Type: "TabItem", NoRecurse: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("direct-children search found %d nested elements", len(els))
	}

	els, err = f.FindAll(Criteria{Type: "Group", NoRecurse: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 {
		t.Errorf("got %d direct Group children, want 2", len(els))
	}
}

func TestFind_InvalidPattern(t *testing.T) {
	_, f := newTestTree(t)
	_, err := f.Find(Criteria{Patterns: []string{"[unclosed"}})
	if err == nil {
		t.Fatal("expected an error for an invalid glob pattern")
	}
}
