// Package errors provides error formatting for pagepatch CLI output.
package errors

import (
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose enables detailed error output with more context keys.
	Verbose bool
}

// Context key whitelist (default mode, in order).
var defaultContextKeys = []string{
	"op",
	"plan",
	"root",
	"target",
	"rule",
	"backup",
	"report",
}

// Additional context keys for verbose mode.
var verboseContextKeys = []string{
	"op",
	"plan",
	"root",
	"target",
	"rule",
	"anchor",
	"marker",
	"module",
	"call",
	"backup",
	"report",
	"cause",
	"hint",
}

const maxValueLen = 256 // max chars for single-line context values

// Format formats an error for display without I/O.
// This is a pure function; it never reads files.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	pe, isPatch := AsPatchError(err)
	if !isPatch {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("error_code: ")
	sb.WriteString(string(pe.Code))
	sb.WriteString("\n")
	sb.WriteString(pe.Msg)
	sb.WriteString("\n")

	if len(pe.Details) == 0 && pe.Cause == nil {
		return sb.String()
	}

	sb.WriteString("\n")

	contextKeys := defaultContextKeys
	if opts.Verbose {
		contextKeys = verboseContextKeys
	}

	printedKeys := make(map[string]bool)
	for _, key := range contextKeys {
		if pe.Details == nil {
			continue
		}
		val, ok := pe.Details[key]
		if !ok || val == "" {
			continue
		}
		if key == "hint" {
			continue
		}
		printedKeys[key] = true
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(val, maxValueLen))
		sb.WriteString("\n")
	}

	if opts.Verbose && pe.Cause != nil && !printedKeys["cause"] {
		sb.WriteString("cause: ")
		sb.WriteString(sanitizeValue(pe.Cause.Error(), maxValueLen))
		sb.WriteString("\n")
	}

	// In verbose mode, print remaining keys under extra: section.
	if opts.Verbose && pe.Details != nil {
		var extraKeys []string
		for key := range pe.Details {
			if !printedKeys[key] && key != "hint" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				val := pe.Details[key]
				if val == "" {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(val, maxValueLen))
				sb.WriteString("\n")
			}
		}
	}

	if pe.Details != nil {
		if hint, ok := pe.Details["hint"]; ok && hint != "" {
			sb.WriteString("\nhint: ")
			sb.WriteString(hint)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// sanitizeValue sanitizes a value for single-line context output.
//   - Trims trailing whitespace
//   - Normalizes CRLF to LF
//   - Replaces newlines with literal \n
//   - Truncates to maxLen chars
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if len(val) > maxLen {
		return val[:maxLen] + "…"
	}
	return val
}
