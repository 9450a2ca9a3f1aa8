package core

// CaseStatus represents the terminal status of a test case.
type CaseStatus int

const (
	// StatusPending: not yet started.
	StatusPending CaseStatus = iota
	// StatusRunning: currently executing.
	StatusRunning
	// StatusPassed: all recorded expectations held.
	StatusPassed
	// StatusFailed: at least one recorded expectation failed.
	StatusFailed
	// StatusErrored: unhandled error (timeout, lost element, crash).
	StatusErrored
	// StatusSkipped: not run because an earlier case aborted the suite.
	StatusSkipped
)

// String returns the string representation of CaseStatus.
func (s CaseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the status is a final state.
func (s CaseStatus) IsTerminal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusErrored, StatusSkipped:
		return true
	default:
		return false
	}
}

// IsSuccess returns true only for a passed case.
func (s CaseStatus) IsSuccess() bool {
	return s == StatusPassed
}
