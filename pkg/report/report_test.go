package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readIndex(t *testing.T, dir string) Index {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatalf("decoding index: %v", err)
	}
	return idx
}

func readDetail(t *testing.T, dir, dataFile string) CaseDetail {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, dataFile))
	if err != nil {
		t.Fatalf("reading detail: %v", err)
	}
	var d CaseDetail
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("decoding detail: %v", err)
	}
	return d
}

func TestWriter_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	names := []string{"open capture", "verify tracks", "close"}
	w, err := NewWriter(dir, "smoke", names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The skeleton is on disk before anything runs.
	idx := readIndex(t, dir)
	if idx.Status != StatusPending {
		t.Errorf("got status %s, want pending", idx.Status)
	}
	if idx.RunID == "" {
		t.Error("index has no run id")
	}
	if len(idx.Cases) != 3 {
		t.Fatalf("got %d case entries, want 3", len(idx.Cases))
	}
	if idx.Summary.Pending != 3 || idx.Summary.Total != 3 {
		t.Errorf("got summary %+v, want 3 pending of 3", idx.Summary)
	}
	for i, c := range idx.Cases {
		if c.Name != names[i] {
			t.Errorf("case %d: got name %q, want %q", i, c.Name, names[i])
		}
		if _, err := os.Stat(filepath.Join(dir, c.DataFile)); err != nil {
			t.Errorf("case %d: detail file missing: %v", i, err)
		}
	}

	w.Start()
	w.CaseStarted(0)
	w.CaseFinished(0, StatusPassed, "", []Expectation{
		{Description: "window exists", Passed: true, Time: time.Now()},
	}, 120*time.Millisecond)
	w.CaseStarted(1)
	w.CaseFinished(1, StatusFailed, "count mismatch", []Expectation{
		{Description: "two tracks shown", Passed: false, Detail: "got 1, want 2", Time: time.Now()},
	}, 80*time.Millisecond)
	w.CaseFinished(2, StatusSkipped, "aborted", nil, 0)
	w.End(StatusFailed)

	idx = readIndex(t, dir)
	if idx.Status != StatusFailed {
		t.Errorf("got status %s, want failed", idx.Status)
	}
	if idx.EndTime == nil {
		t.Error("index has no end time")
	}
	sum := idx.Summary
	if sum.Passed != 1 || sum.Failed != 1 || sum.Skipped != 1 || sum.Pending != 0 {
		t.Errorf("got summary %+v, want 1 passed / 1 failed / 1 skipped", sum)
	}
	if idx.Cases[0].Duration == nil || *idx.Cases[0].Duration != 120 {
		t.Errorf("case 0 duration not recorded: %v", idx.Cases[0].Duration)
	}
	if idx.Cases[1].Error == nil || *idx.Cases[1].Error != "count mismatch" {
		t.Errorf("case 1 error not recorded: %v", idx.Cases[1].Error)
	}

	detail := readDetail(t, dir, idx.Cases[1].DataFile)
	if detail.Status != StatusFailed {
		t.Errorf("got detail status %s, want failed", detail.Status)
	}
	if len(detail.Expectations) != 1 || detail.Expectations[0].Detail != "got 1, want 2" {
		t.Errorf("expectation log not persisted: %+v", detail.Expectations)
	}
}

func TestWriter_SaveArtifact(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "smoke", []string{"only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte("{\"type\":\"Window\"}")
	rel, err := w.SaveArtifact(0, "hierarchy", "application/json", "hierarchy.json", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("artifact not on disk: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("artifact content mismatch")
	}

	detail := readDetail(t, dir, w.Index().Cases[0].DataFile)
	if len(detail.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(detail.Attachments))
	}
	att := detail.Attachments[0]
	if att.Name != "hierarchy" || att.ContentType != "application/json" || att.Path != rel {
		t.Errorf("attachment not registered correctly: %+v", att)
	}

	if _, err := w.SaveArtifact(5, "x", "text/plain", "x.txt", nil); err == nil {
		t.Error("expected an error for an out-of-range case index")
	}
}

func TestWriter_OutOfRangeUpdatesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "smoke", []string{"only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.CaseStarted(7)
	w.CaseFinished(-1, StatusPassed, "", nil, 0)

	idx := readIndex(t, dir)
	if idx.Cases[0].Status != StatusPending {
		t.Errorf("out-of-range update touched case 0: %s", idx.Cases[0].Status)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusPassed, true},
		{StatusFailed, true},
		{StatusErrored, true},
		{StatusSkipped, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
