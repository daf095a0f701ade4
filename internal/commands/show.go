package commands

import (
	"fmt"
	"io"

	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/plan"
	"github.com/gcpanel/pagepatch/internal/rule"
)

// ShowPlanOpts holds options for the plan command.
type ShowPlanOpts struct {
	// PlanPath is the migration plan file (required).
	PlanPath string

	// Root overrides the plan's root directory when non-empty.
	Root string
}

// ShowPlan parses and validates a plan, then prints the resolved rules and
// targets. Loading performs full validation, so this doubles as a lint step.
func ShowPlan(fsys fs.FS, opts ShowPlanOpts, stdout io.Writer) error {
	p, err := loadPlan(fsys, opts.PlanPath, opts.Root)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "plan: %s\n", opts.PlanPath)
	fmt.Fprintf(stdout, "root: %s\n", p.Root)
	if p.BackupDir != "" {
		fmt.Fprintf(stdout, "backup_dir: %s\n", p.BackupDir)
	}

	fmt.Fprintf(stdout, "\nrules (%d):\n", len(p.Rules))
	for _, r := range p.Rules {
		fmt.Fprintf(stdout, "  %s  %s\n", r.ID(), describeRule(r))
	}

	fmt.Fprintf(stdout, "\ntargets (%d):\n", len(p.Targets))
	for _, t := range p.Targets {
		if t.KeyPrefix != "" {
			fmt.Fprintf(stdout, "  %s  key_prefix=%s\n", t.Path, t.KeyPrefix)
		} else {
			fmt.Fprintf(stdout, "  %s\n", t.Path)
		}
	}
	return nil
}

// describeRule summarizes one rule for plan output.
func describeRule(r rule.Rule) string {
	switch r := r.(type) {
	case rule.InsertAfter:
		return fmt.Sprintf("%s anchor=%q", plan.TypeInsertAfter, r.Anchor)
	case rule.AppendImport:
		return fmt.Sprintf("%s module=%s names=%v", plan.TypeAppendImport, r.Module, r.Names)
	case rule.RewriteImport:
		return fmt.Sprintf("%s %s -> %s", plan.TypeRewriteImport, r.FromModule, r.ToModule)
	case rule.WidgetKeys:
		return fmt.Sprintf("%s call=%q suffix=%s", plan.TypeWidgetKeys, r.Call, r.Suffix)
	default:
		return fmt.Sprintf("%T", r)
	}
}
