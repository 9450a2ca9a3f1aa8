package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Writer maintains the report files on disk. The suite runs cases strictly
// in sequence, but a mutex still guards the index so artifact saves and
// status updates cannot interleave a partial write.
type Writer struct {
	mu      sync.Mutex
	dir     string
	index   *Index
	details []CaseDetail
}

// NewWriter builds the report skeleton for the given case names and writes
// the initial pending state to disk.
func NewWriter(dir, suiteName string, caseNames []string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Join(dir, "cases"), 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	now := time.Now()
	w := &Writer{
		dir: dir,
		index: &Index{
			Version:     Version,
			RunID:       uuid.New().String(),
			Suite:       suiteName,
			Status:      StatusPending,
			LastUpdated: now,
			Summary:     Summary{Total: len(caseNames), Pending: len(caseNames)},
		},
	}
	for i, name := range caseNames {
		id := fmt.Sprintf("case-%03d", i+1)
		w.index.Cases = append(w.index.Cases, CaseEntry{
			Index:     i,
			ID:        id,
			Name:      name,
			Status:    StatusPending,
			DataFile:  filepath.Join("cases", id+".json"),
			AssetsDir: filepath.Join("assets", id),
		})
		w.details = append(w.details, CaseDetail{ID: id, Name: name, Status: StatusPending})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w, w.flushLocked()
}

// Dir returns the report output directory.
func (w *Writer) Dir() string { return w.dir }

// Start marks the run as started.
func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.index.Status = StatusRunning
	w.index.StartTime = time.Now()
	w.flushLocked() //nolint:errcheck // reporting must not fail the run
}

// CaseStarted marks case i as running.
func (w *Writer) CaseStarted(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.index.Cases) {
		return
	}
	now := time.Now()
	w.index.Cases[i].Status = StatusRunning
	w.index.Cases[i].StartTime = &now
	w.details[i].Status = StatusRunning
	w.flushLocked() //nolint:errcheck
}

// CaseFinished records case i's terminal status, expectation log and
// duration, and rewrites both the detail file and the index.
func (w *Writer) CaseFinished(i int, status Status, errMsg string, expectations []Expectation, duration time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.index.Cases) {
		return
	}
	now := time.Now()
	entry := &w.index.Cases[i]
	entry.Status = status
	entry.EndTime = &now
	ms := duration.Milliseconds()
	entry.Duration = &ms
	if errMsg != "" {
		entry.Error = &errMsg
	}

	w.details[i].Status = status
	w.details[i].Error = errMsg
	w.details[i].Expectations = expectations

	w.recomputeSummaryLocked()
	w.flushLocked() //nolint:errcheck
}

// SaveArtifact writes an artifact under the case's assets directory and
// registers it in the case detail. It returns the path relative to the
// output directory.
func (w *Writer) SaveArtifact(i int, name, contentType, filename string, data []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.index.Cases) {
		return "", fmt.Errorf("no case at index %d", i)
	}
	rel := filepath.Join(w.index.Cases[i].AssetsDir, filename)
	abs := filepath.Join(w.dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", err
	}
	w.details[i].Attachments = append(w.details[i].Attachments, Attachment{
		Name:        name,
		ContentType: contentType,
		Path:        rel,
	})
	return rel, w.flushLocked()
}

// End marks the run as complete with the overall status.
func (w *Writer) End(status Status) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.index.Status = status
	w.index.EndTime = &now
	w.recomputeSummaryLocked()
	w.flushLocked() //nolint:errcheck
}

// Index returns a snapshot of the current index.
func (w *Writer) Index() Index {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := *w.index
	idx.Cases = append([]CaseEntry(nil), w.index.Cases...)
	return idx
}

func (w *Writer) recomputeSummaryLocked() {
	s := Summary{Total: len(w.index.Cases)}
	for _, c := range w.index.Cases {
		switch c.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusErrored:
			s.Errored++
		case StatusSkipped:
			s.Skipped++
		default:
			s.Pending++
		}
	}
	w.index.Summary = s
}

// flushLocked writes the index and all case detail files. The index is
// written via a temp file and rename so readers never observe a torn file.
func (w *Writer) flushLocked() error {
	w.index.LastUpdated = time.Now()

	for i := range w.details {
		data, err := json.MarshalIndent(&w.details[i], "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(w.dir, w.index.Cases[i].DataFile)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(w.index, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(w.dir, "report.json.tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(w.dir, "report.json"))
}
