// Package report provides JSON-based suite reporting.
//
// Layout under the output directory:
//   - report.json: suite index (status, summary, one entry per case)
//   - cases/case-XXX.json: per-case detail with every expectation record
//   - assets/case-XXX/: per-case artifacts (screenshots, tree dumps)
//
// The format is not contractual; completeness is: every recorded expectation
// and every attempted case appears, including cases skipped after a fatal
// case.
package report

import "time"

// Version is the report schema version.
const Version = "1.0.0"

// Status represents an execution status in the report.
type Status string

// Status values.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored"
	StatusSkipped Status = "skipped"
)

// IsTerminal returns true if the status is a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusErrored, StatusSkipped:
		return true
	default:
		return false
	}
}

// Index is the suite-level report file.
type Index struct {
	Version     string      `json:"version"`
	RunID       string      `json:"runId"`
	Suite       string      `json:"suite"`
	Status      Status      `json:"status"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     *time.Time  `json:"endTime,omitempty"`
	LastUpdated time.Time   `json:"lastUpdated"`
	Summary     Summary     `json:"summary"`
	Cases       []CaseEntry `json:"cases"`
}

// Summary contains aggregated case counts.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
	Pending int `json:"pending"`
}

// CaseEntry is the index entry for one test case, in execution order.
type CaseEntry struct {
	Index     int        `json:"index"`
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	DataFile  string     `json:"dataFile"`
	AssetsDir string     `json:"assetsDir"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int64     `json:"duration,omitempty"` // milliseconds
	Error     *string    `json:"error,omitempty"`
}

// CaseDetail is the per-case file with the full expectation log.
type CaseDetail struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       Status        `json:"status"`
	Error        string        `json:"error,omitempty"`
	Expectations []Expectation `json:"expectations"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
}

// Expectation is one recorded check in emission order.
type Expectation struct {
	Description string    `json:"description"`
	Passed      bool      `json:"passed"`
	Detail      string    `json:"detail,omitempty"`
	Time        time.Time `json:"time"`
}

// Attachment points at a captured artifact file.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Path        string `json:"path"`
}
