package rule

import (
	"fmt"
	"strings"
)

// WidgetKeys assigns a unique, deterministically numbered key argument to
// every occurrence of a widget call that lacks one, preventing widget-state
// collisions between pages. Keys are formatted
// "<target.KeyPrefix>_<suffix>_<n>" with n counting keyless occurrences
// 1-based in source order.
//
// Only calls that open and close on a single line are edited; a call whose
// argument list spans lines is left alone. Parens inside string literals on
// the line are ignored when finding the closing paren.
type WidgetKeys struct {
	RuleID string

	// Call is the call token to look for, including the opening paren
	// (e.g. `st.text_input(`).
	Call string

	// Suffix is the key name component between the page prefix and the
	// occurrence number (e.g. "search").
	Suffix string
}

func (r WidgetKeys) ID() string { return r.RuleID }

// Applied reports whether every editable occurrence of the call already
// carries a key argument.
func (r WidgetKeys) Applied(content string, _ Target) bool {
	for _, line := range strings.Split(content, "\n") {
		if len(r.keylessCalls(line)) > 0 {
			return false
		}
	}
	return true
}

// Apply inserts key arguments into every keyless occurrence.
func (r WidgetKeys) Apply(content string, target Target) (string, string) {
	lines := strings.Split(content, "\n")
	assigned := 0

	for i, line := range lines {
		// Re-scan after each edit; inserting shifts later offsets.
		for {
			calls := r.keylessCalls(line)
			if len(calls) == 0 {
				break
			}
			c := calls[0]
			assigned++
			key := fmt.Sprintf("%s_%s_%d", target.KeyPrefix, r.Suffix, assigned)

			arg := fmt.Sprintf(`, key="%s"`, key)
			if strings.TrimSpace(line[c.argStart:c.closeParen]) == "" {
				arg = fmt.Sprintf(`key="%s"`, key)
			}
			line = line[:c.closeParen] + arg + line[c.closeParen:]
		}
		lines[i] = line
	}

	if assigned == 0 {
		return content, "no keyless calls found"
	}

	noun := "key"
	if assigned > 1 {
		noun = "keys"
	}
	return strings.Join(lines, "\n"), fmt.Sprintf("assigned %d %s", assigned, noun)
}

// call locates one editable occurrence on a line.
type call struct {
	argStart   int // index just past the opening paren
	closeParen int // index of the matching close paren
}

// keylessCalls returns the calls on a line that close on the same line and
// have no key argument, in source order.
func (r WidgetKeys) keylessCalls(line string) []call {
	var calls []call
	offset := 0
	for {
		idx := strings.Index(line[offset:], r.Call)
		if idx < 0 {
			return calls
		}
		argStart := offset + idx + len(r.Call)
		closeParen, ok := matchCloseParen(line, argStart)
		if !ok {
			// Argument list continues on following lines; leave it alone.
			offset = argStart
			continue
		}
		if !strings.Contains(line[argStart:closeParen], "key=") {
			calls = append(calls, call{argStart: argStart, closeParen: closeParen})
		}
		offset = closeParen + 1
	}
}

// matchCloseParen scans from argStart for the close paren matching the call's
// opening paren, skipping parens inside single- or double-quoted strings.
func matchCloseParen(line string, argStart int) (int, bool) {
	depth := 1
	var quote byte
	for i := argStart; i < len(line); i++ {
		ch := line[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
