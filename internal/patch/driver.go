// Package patch implements the load → guard → transform → save pipeline:
// a per-file driver threading content through the plan's rules, and a batch
// driver that processes every target independently.
package patch

import (
	"os"

	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/plan"
	"github.com/gcpanel/pagepatch/internal/report"
	"github.com/gcpanel/pagepatch/internal/rule"
)

// Options control a batch run.
type Options struct {
	// DryRun computes outcomes without writing any file.
	DryRun bool

	// CheckOnly evaluates guards only: targets are never transformed and
	// guard misses surface as no-match. Used by the check command.
	CheckOnly bool

	// Backup receives the original content of a target before its first
	// write. Optional; errors from Backup abort that target's write.
	Backup func(target rule.Target, content []byte) error
}

// Driver runs migration plans against a filesystem.
type Driver struct {
	FS fs.FS
}

// NewDriver creates a Driver backed by the given filesystem.
func NewDriver(fsys fs.FS) *Driver {
	return &Driver{FS: fsys}
}

// Run processes every target in plan order. One target's failure never
// affects the others; the returned results are in (target, rule) order.
func (d *Driver) Run(p *plan.Plan, opts Options) []report.Result {
	results := make([]report.Result, 0, len(p.Targets)*len(p.Rules))
	for _, target := range p.Targets {
		results = append(results, d.runTarget(p, target, opts)...)
	}
	return results
}

// runTarget applies every rule to one target and writes the file once at the
// end if any rule changed it.
func (d *Driver) runTarget(p *plan.Plan, target rule.Target, opts Options) []report.Result {
	path, ok := fs.WithinRoot(p.Root, target.Path)
	if !ok {
		return d.allRules(p, target, report.OutcomeError, "target path escapes root "+p.Root)
	}

	data, err := d.FS.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d.allRules(p, target, report.OutcomeNotFound, "file does not exist")
		}
		return d.allRules(p, target, report.OutcomeError, "read failed: "+err.Error())
	}
	original := string(data)

	content := original
	results := make([]report.Result, 0, len(p.Rules))
	for _, r := range p.Rules {
		res := report.Result{Target: target.Path, Rule: r.ID()}

		if r.Applied(content, target) {
			res.Outcome = report.OutcomeAlreadyApplied
			results = append(results, res)
			continue
		}
		if opts.CheckOnly {
			res.Outcome = report.OutcomeNoMatch
			res.Detail = "effect not present"
			results = append(results, res)
			continue
		}

		next, detail := r.Apply(content, target)
		res.Detail = detail
		if next == content {
			res.Outcome = report.OutcomeNoMatch
		} else {
			res.Outcome = report.OutcomeApplied
			content = next
		}
		results = append(results, res)
	}

	if content == original || opts.DryRun || opts.CheckOnly {
		return results
	}

	if opts.Backup != nil {
		if err := opts.Backup(target, data); err != nil {
			return markWriteFailed(results, "backup failed: "+err.Error())
		}
	}
	if err := fs.WriteFileAtomic(d.FS, path, []byte(content), 0o644); err != nil {
		return markWriteFailed(results, "write failed: "+err.Error())
	}
	return results
}

// allRules reports the same terminal outcome for every rule on a target,
// used when the file itself cannot be processed.
func (d *Driver) allRules(p *plan.Plan, target rule.Target, outcome report.Outcome, detail string) []report.Result {
	results := make([]report.Result, 0, len(p.Rules))
	for _, r := range p.Rules {
		results = append(results, report.Result{
			Target:  target.Path,
			Rule:    r.ID(),
			Outcome: outcome,
			Detail:  detail,
		})
	}
	return results
}

// markWriteFailed downgrades the applied results of a target whose final
// write failed: the file on disk still holds the original content.
func markWriteFailed(results []report.Result, detail string) []report.Result {
	for i := range results {
		if results[i].Outcome == report.OutcomeApplied {
			results[i].Outcome = report.OutcomeError
			results[i].Detail = detail
		}
	}
	return results
}
