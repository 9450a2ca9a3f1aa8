package cases

import (
	"fmt"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/finder"
	"github.com/proflab-dev/e2e-runner/pkg/logger"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// EndSession clicks a menu item that tears down the current top-level window
// and respawns another (e.g. File -> End Session bringing back the session
// setup dialog), then rebinds the session's top-level window handle. The
// rebind must happen before any subsequent query, or later lookups operate
// on the dead window.
type EndSession struct {
	MenuItem finder.Criteria `yaml:"menuItem"`
	// ExpectWindow, when set, is waited for by name before rebinding.
	ExpectWindow string `yaml:"expectWindow"`
}

func (c *EndSession) Name() string {
	return fmt.Sprintf("EndSession(%s)", c.MenuItem.Describe())
}

func (c *EndSession) Execute(s *suite.Session) error {
	crit := c.MenuItem
	if crit.Type == "" {
		crit.Type = "MenuItem"
	}
	item, err := s.Finder.Find(crit)
	if err != nil {
		return err
	}
	if err := item.Click(core.ButtonLeft); err != nil {
		return err
	}

	if c.ExpectWindow != "" {
		err := wait.For(func() (bool, error) {
			windows, err := s.Backend().TopWindows()
			if err != nil {
				return false, wait.NotReady("listing windows: %v", err)
			}
			for _, w := range windows {
				if w.Name() == c.ExpectWindow {
					return true, nil
				}
			}
			return false, nil
		}, s.Wait)
		if err != nil {
			return fmt.Errorf("window %q did not appear: %w", c.ExpectWindow, err)
		}
	}

	// The old top-level window is gone; rebind before anything queries it.
	if _, err := s.TopWindow(true); err != nil {
		return err
	}
	logger.Info("session ended, top-level window rebound")
	return nil
}

// CloseApplication shuts the application down and waits for the process to
// exit.
type CloseApplication struct{}

func (c *CloseApplication) Name() string { return "CloseApplication" }

func (c *CloseApplication) Execute(s *suite.Session) error {
	if err := s.Backend().Close(); err != nil {
		return &core.EnvironmentError{Op: "close", Err: err}
	}
	err := wait.ForTrue(func() bool { return !s.Backend().ProcessRunning() }, s.Wait)
	if err != nil {
		return fmt.Errorf("application did not exit: %w", err)
	}
	logger.Info("application closed")
	return nil
}
