// Package expect collects assertion outcomes without aborting execution.
// A scenario keeps running after a failed check and gathers further
// diagnostics; a single mis-ordered UI state must not hide subsequent
// independent regressions in the same run. Only the Require variants abort,
// and then only the current test case.
package expect

import (
	"fmt"
	"sync"
	"time"

	"github.com/proflab-dev/e2e-runner/pkg/logger"
)

// Record is one recorded expectation outcome. Append-only, never mutated.
type Record struct {
	Description string    `json:"description"`
	Passed      bool      `json:"passed"`
	Detail      string    `json:"detail,omitempty"`
	Time        time.Time `json:"time"`
}

// HardFailureError aborts the current test case. It is returned by the
// Require variants for preconditions whose failure makes the rest of the
// scenario meaningless.
type HardFailureError struct {
	Description string
	Detail      string
}

func (e *HardFailureError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("required expectation failed: %s (%s)", e.Description, e.Detail)
	}
	return fmt.Sprintf("required expectation failed: %s", e.Description)
}

// Recorder owns the ordered sequence of expectation records for one suite
// run. All convenience checks funnel through Record.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one outcome and returns it for caller convenience. Every
// call appends regardless of outcome; failures never abort here.
func (r *Recorder) Record(description string, passed bool, detail string) bool {
	r.mu.Lock()
	r.records = append(r.records, Record{
		Description: description,
		Passed:      passed,
		Detail:      detail,
		Time:        time.Now(),
	})
	r.mu.Unlock()

	logger.Expectation(description, passed, detail)
	return passed
}

// True records whether cond holds.
func (r *Recorder) True(cond bool, description string) bool {
	return r.Record(description, cond, "")
}

// Eq records whether got equals want, with both values in the detail.
func (r *Recorder) Eq(got, want interface{}, description string) bool {
	ok := got == want
	detail := ""
	if !ok {
		detail = fmt.Sprintf("got %v, want %v", got, want)
	}
	return r.Record(description, ok, detail)
}

// RequireTrue records the outcome and returns a *HardFailureError when cond
// does not hold.
func (r *Recorder) RequireTrue(cond bool, description string) error {
	if r.True(cond, description) {
		return nil
	}
	return &HardFailureError{Description: description}
}

// RequireEq records the outcome and returns a *HardFailureError when got
// does not equal want.
func (r *Recorder) RequireEq(got, want interface{}, description string) error {
	if r.Eq(got, want, description) {
		return nil
	}
	return &HardFailureError{
		Description: description,
		Detail:      fmt.Sprintf("got %v, want %v", got, want),
	}
}

// Records returns a copy of all records in emission order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of recorded expectations.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Mark returns a position usable with Since to delimit a case's records.
func (r *Recorder) Mark() int {
	return r.Len()
}

// Since returns a copy of the records appended at or after mark.
func (r *Recorder) Since(mark int) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mark < 0 || mark > len(r.records) {
		mark = len(r.records)
	}
	out := make([]Record, len(r.records)-mark)
	copy(out, r.records[mark:])
	return out
}

// HasFailures reports whether any recorded outcome failed.
func (r *Recorder) HasFailures() bool {
	return r.FailureCount() > 0
}

// FailureCount returns the number of failed records.
func (r *Recorder) FailureCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if !rec.Passed {
			n++
		}
	}
	return n
}

// AssertNoFailures escalates to a hard stop: it returns an error if and only
// if at least one recorded outcome failed.
func (r *Recorder) AssertNoFailures() error {
	if n := r.FailureCount(); n > 0 {
		return &HardFailureError{
			Description: fmt.Sprintf("%d of %d recorded expectations failed", n, r.Len()),
		}
	}
	return nil
}

// FailedSince reports whether any record appended at or after mark failed.
func (r *Recorder) FailedSince(mark int) bool {
	for _, rec := range r.Since(mark) {
		if !rec.Passed {
			return true
		}
	}
	return false
}
