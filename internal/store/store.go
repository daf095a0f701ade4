// Package store persists run state: pristine backups of targets taken before
// their first write, and the machine-readable report of the last run.
// Files are written atomically via temp file + rename.
package store

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/gcpanel/pagepatch/internal/errors"
	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/report"
)

// DefaultDir is the state directory used when the plan names none.
const DefaultDir = ".pagepatch"

// Store handles persistence of backups and run reports.
type Store struct {
	FS  fs.FS            // filesystem interface for stubbing
	Dir string           // state directory (plan backup_dir or DefaultDir)
	Now func() time.Time // injectable clock for deterministic tests
}

// NewStore creates a new Store with the given dependencies.
func NewStore(filesystem fs.FS, dir string, now func() time.Time) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{FS: filesystem, Dir: dir, Now: now}
}

// FilesDir returns the directory holding pristine target copies.
func (s *Store) FilesDir() string {
	return filepath.Join(s.Dir, "files")
}

// BackupPath returns the backup location for a target path (relative to the
// plan root).
func (s *Store) BackupPath(targetPath string) string {
	return filepath.Join(s.FilesDir(), targetPath)
}

// ReportPath returns the path of the persisted run report.
func (s *Store) ReportPath() string {
	return filepath.Join(s.Dir, "report.json")
}

// WriteBackup stores the original content of a target before its first
// write. An existing backup is overwritten; the run being re-entrant matters
// more than keeping the oldest copy, and a converged re-run never writes.
func (s *Store) WriteBackup(targetPath string, content []byte) error {
	path := s.BackupPath(targetPath)
	if err := s.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to create backup directory", err,
			map[string]string{"backup": path})
	}
	if err := fs.WriteFileAtomic(s.FS, path, content, 0o644); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to write backup", err,
			map[string]string{"backup": path})
	}
	return nil
}

// WriteReport persists the run report as indented JSON, stamping it with the
// store clock.
func (s *Store) WriteReport(run report.Run) error {
	run.FinishedAt = s.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to encode run report", err)
	}
	data = append(data, '\n')

	if err := s.FS.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to create state directory", err,
			map[string]string{"report": s.ReportPath()})
	}
	if err := fs.WriteFileAtomic(s.FS, s.ReportPath(), data, 0o644); err != nil {
		return errors.WrapWithDetails(errors.EWriteFailed, "failed to write run report", err,
			map[string]string{"report": s.ReportPath()})
	}
	return nil
}
