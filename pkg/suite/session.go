// Package suite orchestrates an end-to-end run: it owns the application
// lifecycle, executes independently authored test cases strictly in sequence
// against one shared session, aggregates their results and determines the
// process exit status.
package suite

import (
	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/expect"
	"github.com/proflab-dev/e2e-runner/pkg/finder"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// Session is the shared context of one end-to-end run. It is owned by the
// Suite for the suite's lifetime and lent to each case only during that
// case's execution window; cases must not retain it.
type Session struct {
	backend     core.Backend
	windowTitle string
	topWindow   core.Element
	acquired    bool
	stepIndex   int

	// Recorder collects every expectation of the run.
	Recorder *expect.Recorder

	// Finder resolves elements; its default scope is the session's current
	// top-level window, re-resolved on every polling tick.
	Finder *finder.Finder

	// Shared persists data across cases of the same suite, e.g. timings or
	// results from previously executed cases.
	Shared map[string]interface{}

	// Wait holds the run's default polling parameters.
	Wait wait.Options

	// DevMode indicates the application is left running at teardown.
	DevMode bool
}

func newSession(backend core.Backend, windowTitle string, opts wait.Options, devMode bool) *Session {
	s := &Session{
		backend:     backend,
		windowTitle: windowTitle,
		Recorder:    expect.NewRecorder(),
		Shared:      make(map[string]interface{}),
		Wait:        opts,
		DevMode:     devMode,
	}
	s.Finder = finder.New(func() (core.Element, error) {
		return s.TopWindow(false)
	}, opts)
	return s
}

// Backend returns the connection to the application under test.
func (s *Session) Backend() core.Backend { return s.backend }

// StepIndex returns the index of the currently executing case.
func (s *Session) StepIndex() int { return s.stepIndex }

// TopWindow returns the application's current top-level window. Cases must
// force an update after any operation known to replace the top-level window
// (e.g. ending a session), or later lookups silently operate on a stale
// window.
//
// The very first acquisition matches the expected window title with
// best-match fallback; after that, a forced update rebinds to whatever
// window the application currently has on top, since the title may have
// legitimately changed.
func (s *Session) TopWindow(forceUpdate bool) (core.Element, error) {
	if !forceUpdate && s.topWindow != nil {
		return s.topWindow, nil
	}

	var win core.Element
	err := wait.For(func() (bool, error) {
		if !s.acquired {
			w, err := finder.BestMatchWindow(s.backend, s.windowTitle)
			if err != nil {
				return false, err
			}
			win = w
			return true, nil
		}
		windows, err := s.backend.TopWindows()
		if err != nil {
			return false, wait.NotReady("enumerating top-level windows: %v", err)
		}
		if len(windows) == 0 {
			return false, nil
		}
		win = windows[0]
		return true, nil
	}, s.Wait)
	if err != nil {
		return nil, err
	}
	s.acquired = true
	s.topWindow = win
	return win, nil
}
