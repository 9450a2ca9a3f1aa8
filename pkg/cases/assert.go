package cases

import (
	"fmt"

	"github.com/proflab-dev/e2e-runner/pkg/finder"
	"github.com/proflab-dev/e2e-runner/pkg/suite"
)

// ExpectControl records whether at least one control matches the criteria.
type ExpectControl struct {
	Control finder.Criteria `yaml:"control"`
	// Required escalates a miss to a hard failure that aborts the case.
	Required bool `yaml:"required"`
}

func (c *ExpectControl) Name() string {
	return fmt.Sprintf("ExpectControl(%s)", c.Control.Describe())
}

func (c *ExpectControl) Execute(s *suite.Session) error {
	crit := c.Control
	crit.AllowDuplicates = true
	els, err := s.Finder.FindAll(crit)
	if err != nil {
		return err
	}
	desc := fmt.Sprintf("control (%s) exists", c.Control.Describe())
	if c.Required {
		return s.Recorder.RequireTrue(len(els) > 0, desc)
	}
	s.Recorder.True(len(els) > 0, desc)
	return nil
}

// ExpectNoControl records that no control matches the criteria. FindAll
// returning an empty set after the wait is the passing outcome.
type ExpectNoControl struct {
	Control finder.Criteria `yaml:"control"`
}

func (c *ExpectNoControl) Name() string {
	return fmt.Sprintf("ExpectNoControl(%s)", c.Control.Describe())
}

func (c *ExpectNoControl) Execute(s *suite.Session) error {
	crit := c.Control
	crit.AllowDuplicates = true
	els, err := s.Finder.FindAll(crit)
	if err != nil {
		return err
	}
	s.Recorder.Eq(len(els), 0, fmt.Sprintf("no control (%s) exists", c.Control.Describe()))
	return nil
}

// ExpectControlCount records whether exactly Count controls match.
type ExpectControlCount struct {
	Control finder.Criteria `yaml:"control"`
	Count   int             `yaml:"count"`
}

func (c *ExpectControlCount) Name() string {
	return fmt.Sprintf("ExpectControlCount(%s, %d)", c.Control.Describe(), c.Count)
}

func (c *ExpectControlCount) Execute(s *suite.Session) error {
	crit := c.Control
	crit.AllowDuplicates = true
	els, err := s.Finder.FindAll(crit)
	if err != nil {
		return err
	}
	s.Recorder.Eq(len(els), c.Count,
		fmt.Sprintf("%d controls (%s) exist", c.Count, c.Control.Describe()))
	return nil
}
