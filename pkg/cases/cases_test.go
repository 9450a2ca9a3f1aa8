package cases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/config"
	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/driver/fake"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// runSuite builds the cases from YAML and executes them against the fake
// backend, failing the test on launch errors.
func runSuite(t *testing.T, d *fake.Driver, windowTitle, casesYAML string) *suite.Suite {
	t.Helper()
	cfg, err := config.Parse([]byte("windowTitle: " + windowTitle + "\n" + casesYAML))
	if err != nil {
		t.Fatalf("parsing suite definition: %v", err)
	}
	built, err := BuildAll(cfg.Cases)
	if err != nil {
		t.Fatalf("building cases: %v", err)
	}
	s := suite.New("test", d, built, suite.Options{
		WindowTitle:   windowTitle,
		Wait:          wait.Options{Timeout: 300 * time.Millisecond, Interval: 10 * time.Millisecond},
		LaunchTimeout: 5 * time.Second,
	})
	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("suite execution: %v", err)
	}
	return s
}

func requireAllPassed(t *testing.T, s *suite.Suite) {
	t.Helper()
	for _, r := range s.Results() {
		if r.Status != core.StatusPassed {
			t.Errorf("case %q: got %s, want passed (err: %v)", r.Name, r.Status, r.Err)
		}
	}
	if s.ExitCode() != 0 {
		t.Errorf("got exit code %d, want 0", s.ExitCode())
	}
}

func TestBuild(t *testing.T) {
	cfg, err := config.Parse([]byte(`
windowTitle: App
cases:
  - type: clickControl
    control:
      type: Button
      name: OK
    double: true
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	c, err := Build(cfg.Cases[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	click, ok := c.(*ClickControl)
	if !ok {
		t.Fatalf("got %T, want *ClickControl", c)
	}
	if click.Control.Name != "OK" || click.Control.Type != "Button" || !click.Double {
		t.Errorf("parameters not decoded: %+v", click)
	}
}

func TestBuild_UnknownType(t *testing.T) {
	cfg, err := config.Parse([]byte("windowTitle: App\ncases:\n  - type: launchRocket"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Build(cfg.Cases[0])
	if err == nil || !strings.Contains(err.Error(), "launchRocket") {
		t.Fatalf("got %v, want an unknown-type error naming the type", err)
	}
}

func TestBuildAll_ReportsCasePosition(t *testing.T) {
	cfg, err := config.Parse([]byte(`
windowTitle: App
cases:
  - type: closeApplication
  - type: launchRocket
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = BuildAll(cfg.Cases)
	if err == nil || !strings.Contains(err.Error(), "case 2") {
		t.Fatalf("got %v, want an error naming the failing case position", err)
	}
}

func TestRegistered_ContainsBuiltins(t *testing.T) {
	names := Registered()
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, want := range []string{"clickControl", "typeText", "expectControl", "expectNoControl", "expectControlCount", "endSession", "closeApplication"} {
		if !set[want] {
			t.Errorf("built-in case %q not registered", want)
		}
	}
}

func TestClickControl_TriggersUIReaction(t *testing.T) {
	start := fake.NewNode("Button", "Start")
	win := fake.NewNode("Window", "Main", start)
	start.OnClick = func(d *fake.Driver) {
		win.Children = append(win.Children, fake.NewNode("Text", "Capturing"))
	}
	d := fake.New(win)

	s := runSuite(t, d, "Main", `
cases:
  - type: clickControl
    control:
      type: Button
      name: Start
  - type: expectControl
    control:
      type: Text
      name: Capturing
    required: true
`)
	requireAllPassed(t, s)
}

func TestTypeText(t *testing.T) {
	filter := fake.NewNode("Edit", "FilterTracks")
	d := fake.New(fake.NewNode("Window", "Main", filter))

	s := runSuite(t, d, "Main", `
cases:
  - type: typeText
    control:
      type: Edit
      name: FilterTracks
    text: Scheduler
`)
	requireAllPassed(t, s)
	if filter.TextValue != "Scheduler" {
		t.Errorf("got text %q, want %q", filter.TextValue, "Scheduler")
	}
}

func TestExpectCases(t *testing.T) {
	d := fake.New(fake.NewNode("Window", "Main",
		fake.NewNode("TabItem", "Functions"),
		fake.NewNode("TabItem", "Live"),
	))

	s := runSuite(t, d, "Main", `
cases:
  - type: expectControlCount
    control:
      type: TabItem
    count: 2
  - type: expectNoControl
    control:
      type: Button
      name: Delete
`)
	requireAllPassed(t, s)
}

func TestExpectControl_MissRecordsFailure(t *testing.T) {
	d := fake.New(fake.NewNode("Window", "Main"))

	s := runSuite(t, d, "Main", `
cases:
  - type: expectControl
    control:
      type: Button
      name: Ghost
`)
	results := s.Results()
	if results[0].Status != core.StatusFailed {
		t.Errorf("got %s, want failed for a missed expectation", results[0].Status)
	}
	if s.ExitCode() == 0 {
		t.Error("exit code 0 despite a failed expectation")
	}
}

func TestEndSession_RebindsToRespawnedWindow(t *testing.T) {
	end := fake.NewNode("MenuItem", "End Session")
	end.OnClick = func(d *fake.Driver) {
		d.SetWindows(fake.NewNode("Window", "Session Setup",
			fake.NewNode("Button", "Start Session"),
		))
	}
	d := fake.New(fake.NewNode("Window", "Scope Profiler", end))

	// The control search after endSession only succeeds if the session
	// rebound to the respawned window; the original one is gone.
	s := runSuite(t, d, "Scope Profiler", `
cases:
  - type: endSession
    menuItem:
      name: End Session
    expectWindow: Session Setup
  - type: expectControl
    control:
      type: Button
      name: Start Session
    required: true
`)
	requireAllPassed(t, s)
}

func TestCloseApplication(t *testing.T) {
	d := fake.New(fake.NewNode("Window", "Main"))

	s := runSuite(t, d, "Main", "cases:\n  - type: closeApplication")
	requireAllPassed(t, s)
	if d.ProcessRunning() {
		t.Error("application still running after closeApplication")
	}
}
