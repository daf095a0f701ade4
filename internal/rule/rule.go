// Package rule implements the idempotent content transformations applied to
// page files: anchor-relative insertion, import-list editing, import-path
// rewriting, and widget key assignment.
//
// A rule is a pure function over file content paired with a guard predicate.
// The guard detects "effect already present"; Apply is only meaningful on
// content the guard rejects and must preserve all unrelated bytes.
package rule

// Target identifies one file scheduled for patching, plus the per-file
// parameters some rules need.
type Target struct {
	// Path is the target file path, relative to the plan root.
	Path string

	// KeyPrefix is the unique per-page identifier used by widget key rules
	// (e.g. "rfis" yields keys rfis_search_1, rfis_search_2, ...).
	KeyPrefix string
}

// Rule is a single idempotent transformation.
//
// Applied is the idempotency guard: true means the rule's effect is already
// present and Apply must not be called. Apply returns the new content and a
// human-readable detail; returning the input unchanged signals that the
// rule's anchor or pattern was absent (a no-match, not an error).
type Rule interface {
	ID() string
	Applied(content string, target Target) bool
	Apply(content string, target Target) (string, string)
}
