// Package commands implements pagepatch CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/gcpanel/pagepatch/internal/errors"
	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/patch"
	"github.com/gcpanel/pagepatch/internal/plan"
	"github.com/gcpanel/pagepatch/internal/render"
	"github.com/gcpanel/pagepatch/internal/report"
	"github.com/gcpanel/pagepatch/internal/rule"
	"github.com/gcpanel/pagepatch/internal/store"
)

// ApplyOpts holds options for the apply command.
type ApplyOpts struct {
	// PlanPath is the migration plan file (required).
	PlanPath string

	// Root overrides the plan's root directory when non-empty.
	Root string

	// DryRun computes outcomes without writing files or the run report.
	DryRun bool

	// Strict returns E_RUN_FAILED when any target fails.
	Strict bool

	// Backup writes a pristine copy of each modified file before its
	// first write.
	Backup bool

	// JSON emits the run report as JSON instead of status lines.
	JSON bool
}

// Apply loads the plan, runs every rule against every target, prints the
// run report, and persists report.json. Per-target failures never abort the
// run; with Strict they surface in the exit code.
func Apply(fsys fs.FS, opts ApplyOpts, stdout io.Writer) error {
	p, err := loadPlan(fsys, opts.PlanPath, opts.Root)
	if err != nil {
		return err
	}

	st := store.NewStore(fsys, p.BackupDir, time.Now)

	popts := patch.Options{DryRun: opts.DryRun}
	if opts.Backup && !opts.DryRun {
		popts.Backup = func(target rule.Target, content []byte) error {
			return st.WriteBackup(target.Path, content)
		}
	}

	results := patch.NewDriver(fsys).Run(p, popts)
	run := report.Run{
		Plan:    opts.PlanPath,
		Root:    p.Root,
		DryRun:  opts.DryRun,
		Results: results,
		Summary: report.Summarize(results),
	}

	if err := writeRun(stdout, run, opts.JSON); err != nil {
		return err
	}

	if !opts.DryRun {
		if err := st.WriteReport(run); err != nil {
			return err
		}
	}

	if opts.Strict && !run.Summary.Clean() {
		failed := run.Summary.NotFound + run.Summary.Errors
		return errors.NewWithDetails(errors.ERunFailed,
			fmt.Sprintf("%d of %d results failed", failed, len(results)),
			map[string]string{"plan": opts.PlanPath, "root": p.Root})
	}
	return nil
}

// loadPlan loads a plan and applies the root override.
func loadPlan(fsys fs.FS, planPath, rootOverride string) (*plan.Plan, error) {
	if planPath == "" {
		return nil, errors.New(errors.EUsage, "plan file is required")
	}
	p, err := plan.Load(fsys, planPath)
	if err != nil {
		return nil, err
	}
	if rootOverride != "" {
		p.Root = rootOverride
	}
	return p, nil
}

// writeRun renders a run report to stdout in the requested format.
func writeRun(stdout io.Writer, run report.Run, asJSON bool) error {
	var err error
	if asJSON {
		err = render.WriteRunJSON(stdout, run)
	} else {
		err = render.WriteRunHuman(stdout, run)
	}
	if err != nil {
		return errors.Wrap(errors.EInternal, "failed to write run report", err)
	}
	return nil
}
