package suite

import (
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/expect"
)

// Case is one named, independently authored unit of interaction: find
// controls, act on them, assert. Ordinary assertion outcomes go through the
// session's Recorder; Execute returns an error only for unrecoverable
// conditions (control never appeared, connection lost), which ends the case
// with errored status.
type Case interface {
	Name() string
	Execute(s *Session) error
}

// SetupCase is implemented by cases that need preparation before Execute.
type SetupCase interface {
	Setup(s *Session) error
}

// TeardownCase is implemented by cases that must release resources after
// Execute. Teardown always runs, even when Execute fails or panics.
type TeardownCase interface {
	Teardown(s *Session) error
}

// CaseResult is the immutable outcome of one executed case, created at case
// completion. Exactly one exists per case, in execution order; cases never
// run (after a fatal case) are listed with skipped status rather than
// silently omitted.
type CaseResult struct {
	Name     string
	Status   core.CaseStatus
	Records  []expect.Record
	Err      error
	Duration time.Duration
}
