package rule

import (
	"fmt"
	"strings"
)

// InsertAfter inserts a fixed block of lines immediately after the first line
// containing the anchor substring. The marker substring is the idempotency
// guard; it must occur in the block so that a patched file is recognized.
type InsertAfter struct {
	RuleID string

	// Anchor is the substring identifying the insertion point line
	// (e.g. "st.set_page_config(").
	Anchor string

	// Marker is the substring whose presence means the block was already
	// inserted (e.g. "check_authentication()").
	Marker string

	// Block is the text to insert. A trailing newline is optional; the
	// block is inserted as whole lines after the anchor line.
	Block string
}

func (r InsertAfter) ID() string { return r.RuleID }

// Applied reports whether the marker is already present.
func (r InsertAfter) Applied(content string, _ Target) bool {
	return strings.Contains(content, r.Marker)
}

// Apply inserts the block after the first anchor line. If no line contains
// the anchor, the content is returned unchanged with a no-anchor detail.
func (r InsertAfter) Apply(content string, _ Target) (string, string) {
	lines := strings.Split(content, "\n")

	anchorIdx := -1
	anchorCount := 0
	for i, line := range lines {
		if strings.Contains(line, r.Anchor) {
			anchorCount++
			if anchorIdx < 0 {
				anchorIdx = i
			}
		}
	}
	if anchorIdx < 0 {
		return content, "no anchor line found"
	}

	blockLines := strings.Split(strings.TrimRight(r.Block, "\n"), "\n")

	out := make([]string, 0, len(lines)+len(blockLines))
	out = append(out, lines[:anchorIdx+1]...)
	out = append(out, blockLines...)
	out = append(out, lines[anchorIdx+1:]...)

	detail := fmt.Sprintf("inserted after line %d", anchorIdx+1)
	if anchorCount > 1 {
		// First match wins; surface the ambiguity instead of hiding it.
		detail = fmt.Sprintf("inserted after line %d (anchor matched %d lines)", anchorIdx+1, anchorCount)
	}
	return strings.Join(out, "\n"), detail
}
