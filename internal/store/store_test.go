package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/report"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestWriteBackup_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s := NewStore(fs.NewRealFS(), dir, fixedNow)

	if err := s.WriteBackup("sub/rfis.py", []byte("original\n")); err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "files", "sub", "rfis.py"))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(data) != "original\n" {
		t.Errorf("backup content = %q", data)
	}
}

func TestWriteReport_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s := NewStore(fs.NewRealFS(), dir, fixedNow)

	run := report.Run{
		Plan: "plan.yaml",
		Root: "pages",
		Results: []report.Result{
			{Target: "rfis.py", Rule: "auth-check", Outcome: report.OutcomeApplied, Detail: "inserted after line 3"},
		},
		Summary: report.Summary{Applied: 1},
	}
	if err := s.WriteReport(run); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	data, err := os.ReadFile(s.ReportPath())
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}

	var got report.Run
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report is not valid json: %v", err)
	}
	if got.FinishedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("FinishedAt = %q", got.FinishedAt)
	}
	if len(got.Results) != 1 || got.Results[0].Outcome != report.OutcomeApplied {
		t.Errorf("results = %+v", got.Results)
	}
}

func TestNewStore_DefaultDir(t *testing.T) {
	s := NewStore(fs.NewRealFS(), "", fixedNow)
	if s.Dir != DefaultDir {
		t.Errorf("Dir = %q, want %q", s.Dir, DefaultDir)
	}
}
