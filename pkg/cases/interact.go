package cases

import (
	"fmt"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/finder"
	"github.com/proflab-dev/e2e-runner/pkg/logger"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
)

// ClickControl resolves a control and clicks it.
type ClickControl struct {
	Control finder.Criteria `yaml:"control"`
	Button  string          `yaml:"button"` // "left" (default) or "right"
	Double  bool            `yaml:"double"`
}

func (c *ClickControl) Name() string {
	return fmt.Sprintf("ClickControl(%s)", c.Control.Describe())
}

func (c *ClickControl) Execute(s *suite.Session) error {
	el, err := s.Finder.Find(c.Control)
	if err != nil {
		return err
	}
	if c.Double {
		err = el.DoubleClick()
	} else {
		button := core.MouseButton(c.Button)
		if button == "" {
			button = core.ButtonLeft
		}
		err = el.Click(button)
	}
	if err != nil {
		return err
	}
	// Click handlers may repaint; let the UI settle before the next step.
	if err := s.Backend().WaitForIdle(s.Wait.Timeout); err != nil {
		logger.Debug("wait-for-idle after click: %v", err)
	}
	return nil
}

// TypeText resolves an edit control and replaces its text.
type TypeText struct {
	Control finder.Criteria `yaml:"control"`
	Text    string          `yaml:"text"`
}

func (c *TypeText) Name() string {
	return fmt.Sprintf("TypeText(%s)", c.Control.Describe())
}

func (c *TypeText) Execute(s *suite.Session) error {
	el, err := s.Finder.Find(c.Control)
	if err != nil {
		return err
	}
	logger.Debug("typing %q into %s", c.Text, c.Control.Describe())
	return el.SetText(c.Text)
}
