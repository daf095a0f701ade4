// Package report defines the structured run report: one outcome per
// (target, rule) pair plus aggregate counts. It is pure; rendering and
// persistence live elsewhere.
package report

// Outcome is the terminal state of one rule on one target.
type Outcome string

const (
	// OutcomeApplied means the rule changed the file.
	OutcomeApplied Outcome = "applied"

	// OutcomeAlreadyApplied means the idempotency guard held; nothing to do.
	OutcomeAlreadyApplied Outcome = "already-applied"

	// OutcomeNoMatch means the rule's anchor or pattern was absent; the
	// file was left unchanged. An observable no-op, not an error.
	OutcomeNoMatch Outcome = "no-match"

	// OutcomeNotFound means the target file does not exist.
	OutcomeNotFound Outcome = "not-found"

	// OutcomeError means the target could not be processed (write failure,
	// path outside the root, unreadable file).
	OutcomeError Outcome = "error"
)

// IsError reports whether the outcome represents a failure rather than a
// skip or a successful patch.
func (o Outcome) IsError() bool {
	return o == OutcomeNotFound || o == OutcomeError
}

// Result is the outcome of one rule on one target.
type Result struct {
	Target  string  `json:"target"`
	Rule    string  `json:"rule"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// Summary aggregates results for one run.
type Summary struct {
	Applied        int `json:"applied"`
	AlreadyApplied int `json:"already_applied"`
	NoMatch        int `json:"no_match"`
	NotFound       int `json:"not_found"`
	Errors         int `json:"errors"`
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Outcome {
		case OutcomeApplied:
			s.Applied++
		case OutcomeAlreadyApplied:
			s.AlreadyApplied++
		case OutcomeNoMatch:
			s.NoMatch++
		case OutcomeNotFound:
			s.NotFound++
		case OutcomeError:
			s.Errors++
		}
	}
	return s
}

// Clean reports whether the run finished without per-target failures.
func (s Summary) Clean() bool {
	return s.NotFound == 0 && s.Errors == 0
}

// Converged reports whether every rule's guard already held on every target:
// nothing was applied, nothing failed, and no anchor was missing.
func (s Summary) Converged() bool {
	return s.Applied == 0 && s.NoMatch == 0 && s.Clean()
}

// Run is the persisted form of a whole run report.
type Run struct {
	Plan       string   `json:"plan"`
	Root       string   `json:"root"`
	FinishedAt string   `json:"finished_at,omitempty"`
	DryRun     bool     `json:"dry_run,omitempty"`
	Results    []Result `json:"results"`
	Summary    Summary  `json:"summary"`
}
