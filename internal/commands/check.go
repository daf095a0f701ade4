package commands

import (
	"fmt"
	"io"

	"github.com/gcpanel/pagepatch/internal/errors"
	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/patch"
	"github.com/gcpanel/pagepatch/internal/report"
)

// CheckOpts holds options for the check command.
type CheckOpts struct {
	// PlanPath is the migration plan file (required).
	PlanPath string

	// Root overrides the plan's root directory when non-empty.
	Root string

	// JSON emits the run report as JSON instead of status lines.
	JSON bool
}

// Check verifies convergence: every rule's guard must hold on every target.
// Nothing is written. Returns E_NOT_CONVERGED when any target diverges, so
// the exit code is usable in CI.
func Check(fsys fs.FS, opts CheckOpts, stdout io.Writer) error {
	p, err := loadPlan(fsys, opts.PlanPath, opts.Root)
	if err != nil {
		return err
	}

	results := patch.NewDriver(fsys).Run(p, patch.Options{CheckOnly: true})
	run := report.Run{
		Plan:    opts.PlanPath,
		Root:    p.Root,
		Results: results,
		Summary: report.Summarize(results),
	}

	if err := writeRun(stdout, run, opts.JSON); err != nil {
		return err
	}

	if !run.Summary.Converged() {
		diverged := len(results) - run.Summary.AlreadyApplied
		return errors.NewWithDetails(errors.ENotConverged,
			fmt.Sprintf("%d of %d checks diverged", diverged, len(results)),
			map[string]string{
				"plan": opts.PlanPath,
				"root": p.Root,
				"hint": "run 'pagepatch apply' to converge the targets",
			})
	}
	return nil
}
