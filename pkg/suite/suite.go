package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/core"
	"github.com/proflab-dev/e2e-runner/pkg/expect"
	"github.com/proflab-dev/e2e-runner/pkg/logger"
	"github.com/proflab-dev/e2e-runner/pkg/report"
	"github.com/proflab-dev/e2e-runner/pkg/wait"
)

// State is the suite's lifecycle state.
type State int

// Suite states.
const (
	StateIdle State = iota
	StateLaunching
	StateRunning
	StateTearingDown
	StateDone
)

// Policy decides what happens to the remaining cases after a case errors.
type Policy int

const (
	// PolicyAbortSuite skips the remaining cases after an errored case.
	PolicyAbortSuite Policy = iota
	// PolicyContinue keeps running the remaining cases.
	PolicyContinue
)

// DefaultLaunchTimeout bounds application acquisition; a GUI under load can
// take a while to bring up its first window.
const DefaultLaunchTimeout = 60 * time.Second

// Options configures a Suite.
type Options struct {
	// WindowTitle is the expected top-level window title; acquisition
	// accepts the closest match.
	WindowTitle string

	// Wait holds the default polling parameters for the run.
	Wait wait.Options

	// LaunchTimeout bounds connecting to the application and acquiring its
	// first top-level window.
	LaunchTimeout time.Duration

	// DevMode leaves the application running at teardown.
	DevMode bool

	// Policy decides whether an errored case aborts the remaining cases.
	Policy Policy

	// Artifacts controls screenshot/tree-dump capture per case.
	Artifacts core.ArtifactMode

	// Reporter, when set, receives all case results and artifacts.
	Reporter *report.Writer
}

// Suite owns one end-to-end run: launch or attach, sequential case
// execution over a shared session, guaranteed teardown, aggregate verdict.
type Suite struct {
	name    string
	backend core.Backend
	cases   []Case
	opts    Options

	state        State
	session      *Session
	results      []CaseResult
	launchFailed bool
}

// New creates a suite over the given backend and ordered cases.
func New(name string, backend core.Backend, cases []Case, opts Options) *Suite {
	if opts.LaunchTimeout <= 0 {
		opts.LaunchTimeout = DefaultLaunchTimeout
	}
	return &Suite{
		name:    name,
		backend: backend,
		cases:   cases,
		opts:    opts,
		state:   StateIdle,
	}
}

// State returns the suite's current lifecycle state.
func (s *Suite) State() State { return s.state }

// Results returns the per-case results in execution order.
func (s *Suite) Results() []CaseResult {
	return append([]CaseResult(nil), s.results...)
}

// ExitCode returns the process exit status for the run: 0 only if the
// application launched and every case passed.
func (s *Suite) ExitCode() int {
	if s.launchFailed {
		return 1
	}
	for _, r := range s.results {
		if r.Status != core.StatusPassed {
			return 1
		}
	}
	return 0
}

// Execute runs the whole suite: Launching, Running each case in order,
// TearingDown regardless of how Running ended, Done. The returned error is
// non-nil only when the application could not be acquired; per-case failures
// are reported through Results and ExitCode.
func (s *Suite) Execute(ctx context.Context) error {
	logger.Info("suite %q started (%d cases)", s.name, len(s.cases))
	if s.opts.Reporter != nil {
		s.opts.Reporter.Start()
	}

	s.state = StateLaunching
	launchErr := s.launch(ctx)
	if launchErr != nil {
		s.launchFailed = true
		logger.Error("suite %q: could not acquire application: %v", s.name, launchErr)
		s.skipRemaining(0, "application launch failed")
	} else {
		s.state = StateRunning
		s.runCases(ctx)
	}

	s.state = StateTearingDown
	s.teardown()
	s.state = StateDone

	if s.opts.Reporter != nil {
		s.opts.Reporter.End(s.overallStatus())
	}
	logger.Info("suite %q finished: %s", s.name, s.overallStatus())

	if launchErr != nil {
		return &core.EnvironmentError{Op: "launch", Err: launchErr}
	}
	return nil
}

// launch connects to the application and acquires its initial top-level
// window. Failure here is fatal for the whole suite.
func (s *Suite) launch(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.LaunchTimeout)
	defer cancel()

	logger.Info("waiting for application %q", s.opts.WindowTitle)
	if err := s.backend.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	s.session = newSession(s.backend, s.opts.WindowTitle, s.opts.Wait, s.opts.DevMode)
	launchWait := wait.Options{Timeout: s.opts.LaunchTimeout, Interval: time.Second}
	prev := s.session.Wait
	s.session.Wait = launchWait
	_, err := s.session.TopWindow(true)
	s.session.Wait = prev
	if err != nil {
		return fmt.Errorf("acquire top-level window: %w", err)
	}
	logger.Info("connected to application %q", s.opts.WindowTitle)
	return nil
}

func (s *Suite) runCases(ctx context.Context) {
	for i, c := range s.cases {
		if ctx.Err() != nil {
			s.skipRemaining(i, "run cancelled")
			return
		}

		res := s.runCase(i, c)
		s.results = append(s.results, res)

		if res.Status == core.StatusErrored && s.opts.Policy == PolicyAbortSuite {
			s.skipRemaining(i+1, fmt.Sprintf("aborted after errored case %q", c.Name()))
			return
		}
	}
}

// skipRemaining lists the cases from index from onward as skipped; they are
// part of the report even though they never ran.
func (s *Suite) skipRemaining(from int, reason string) {
	for i := from; i < len(s.cases); i++ {
		logger.Warn("case %q skipped: %s", s.cases[i].Name(), reason)
		s.results = append(s.results, CaseResult{
			Name:   s.cases[i].Name(),
			Status: core.StatusSkipped,
			Err:    errors.New(reason),
		})
		if s.opts.Reporter != nil {
			s.opts.Reporter.CaseFinished(i, report.StatusSkipped, reason, nil, 0)
		}
	}
}

func (s *Suite) runCase(i int, c Case) CaseResult {
	start := time.Now()
	mark := s.session.Recorder.Mark()
	s.session.stepIndex = i

	logger.Info("running case %q (%d/%d)", c.Name(), i+1, len(s.cases))
	if s.opts.Reporter != nil {
		s.opts.Reporter.CaseStarted(i)
	}

	err := s.executeCase(c)

	status := core.StatusPassed
	switch {
	case err != nil:
		var hard *expect.HardFailureError
		if errors.As(err, &hard) {
			// A hard assertion aborts only this case, as a failure.
			status = core.StatusFailed
		} else {
			status = core.StatusErrored
		}
	case s.session.Recorder.FailedSince(mark):
		status = core.StatusFailed
	}

	res := CaseResult{
		Name:     c.Name(),
		Status:   status,
		Records:  s.session.Recorder.Since(mark),
		Err:      err,
		Duration: time.Since(start),
	}

	s.captureArtifacts(i, status)
	if s.opts.Reporter != nil {
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		s.opts.Reporter.CaseFinished(i, reportStatus(status), errMsg, toExpectations(res.Records), res.Duration)
	}
	logger.CaseStatus(c.Name(), status.String(), res.Duration.Milliseconds())
	return res
}

// executeCase runs setup, the step body and teardown. Teardown runs even
// when Execute fails or panics; a panic surfaces as a case error rather
// than killing the run.
func (s *Suite) executeCase(c Case) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in case %q: %v", c.Name(), r)
		}
	}()

	if sc, ok := c.(SetupCase); ok {
		if serr := sc.Setup(s.session); serr != nil {
			return fmt.Errorf("setup: %w", serr)
		}
	}
	if tc, ok := c.(TeardownCase); ok {
		defer func() {
			if terr := tc.Teardown(s.session); terr != nil {
				logger.Warn("teardown of case %q failed: %v", c.Name(), terr)
				if err == nil {
					err = fmt.Errorf("teardown: %w", terr)
				}
			}
		}()
	}
	return c.Execute(s.session)
}

func (s *Suite) captureArtifacts(i int, status core.CaseStatus) {
	if s.opts.Reporter == nil || s.opts.Artifacts == core.ArtifactNever {
		return
	}
	failed := status == core.StatusFailed || status == core.StatusErrored
	if s.opts.Artifacts == core.ArtifactOnFailure && !failed {
		return
	}

	var attachments []core.Attachment
	if data, err := s.backend.Screenshot(); err != nil {
		logger.Warn("screenshot capture failed: %v", err)
	} else {
		attachments = append(attachments, core.NewScreenshotAttachment("screenshot.png", data))
	}
	if data, err := s.backend.Hierarchy(); err != nil {
		logger.Warn("hierarchy capture failed: %v", err)
	} else {
		attachments = append(attachments, core.NewHierarchyAttachment("hierarchy.json", data))
	}
	for _, att := range attachments {
		if _, err := s.opts.Reporter.SaveArtifact(i, att.Name, att.ContentType, att.Path, att.Body); err != nil {
			logger.Warn("saving %s artifact: %v", att.Name, err)
		}
	}
}

// teardown releases application resources. It runs no matter how the
// previous state was reached; failures are logged, never re-raised, so they
// cannot mask the true scenario failure.
func (s *Suite) teardown() {
	if s.opts.DevMode {
		logger.Info("dev mode: leaving application running")
		return
	}
	if err := s.backend.Close(); err != nil {
		logger.Warn("teardown: closing application: %v", err)
	}
	err := wait.ForTrue(func() bool { return !s.backend.ProcessRunning() },
		wait.Options{Timeout: 10 * time.Second, Interval: 500 * time.Millisecond})
	if err != nil {
		logger.Warn("teardown: application still running: %v", err)
		return
	}
	logger.Info("application closed")
}

func (s *Suite) overallStatus() report.Status {
	if s.launchFailed {
		return report.StatusErrored
	}
	for _, r := range s.results {
		switch r.Status {
		case core.StatusErrored:
			return report.StatusErrored
		case core.StatusFailed, core.StatusSkipped:
			return report.StatusFailed
		}
	}
	return report.StatusPassed
}

func reportStatus(s core.CaseStatus) report.Status {
	switch s {
	case core.StatusPassed:
		return report.StatusPassed
	case core.StatusFailed:
		return report.StatusFailed
	case core.StatusErrored:
		return report.StatusErrored
	case core.StatusSkipped:
		return report.StatusSkipped
	case core.StatusRunning:
		return report.StatusRunning
	default:
		return report.StatusPending
	}
}

func toExpectations(records []expect.Record) []report.Expectation {
	out := make([]report.Expectation, len(records))
	for i, r := range records {
		out[i] = report.Expectation{
			Description: r.Description,
			Passed:      r.Passed,
			Detail:      r.Detail,
			Time:        r.Time,
		}
	}
	return out
}
