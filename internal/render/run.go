// Package render formats run reports for CLI output. It is a presentation
// layer only; outcomes are computed by the patch engine and carried in
// report values.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gcpanel/pagepatch/internal/report"
)

// WriteRunHuman writes one status line per (target, rule) result plus a
// summary line. Fields are separated by whitespace columns for easy scanning.
func WriteRunHuman(w io.Writer, run report.Run) error {
	if len(run.Results) == 0 {
		if _, err := fmt.Fprintln(w, "no targets in plan"); err != nil {
			return err
		}
		return writeSummary(w, run)
	}

	widths := columnWidths(run.Results)

	header := formatRow(
		"TARGET", widths.target,
		"RULE", widths.rule,
		"OUTCOME", widths.outcome,
		"DETAIL", 0,
	)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, res := range run.Results {
		line := formatRow(
			res.Target, widths.target,
			res.Rule, widths.rule,
			string(res.Outcome), widths.outcome,
			res.Detail, 0,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return writeSummary(w, run)
}

func writeSummary(w io.Writer, run report.Run) error {
	s := run.Summary
	line := fmt.Sprintf("applied=%d already-applied=%d no-match=%d not-found=%d errors=%d",
		s.Applied, s.AlreadyApplied, s.NoMatch, s.NotFound, s.Errors)
	if run.DryRun {
		line += " (dry run)"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// WriteRunJSON writes the whole run report as one indented JSON document.
func WriteRunJSON(w io.Writer, run report.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// colWidths holds the calculated column widths.
type colWidths struct {
	target  int
	rule    int
	outcome int
}

// columnWidths calculates the maximum width for each column.
func columnWidths(results []report.Result) colWidths {
	widths := colWidths{
		target:  len("TARGET"),
		rule:    len("RULE"),
		outcome: len("OUTCOME"),
	}

	for _, res := range results {
		if len(res.Target) > widths.target {
			widths.target = len(res.Target)
		}
		if len(res.Rule) > widths.rule {
			widths.rule = len(res.Rule)
		}
		if len(res.Outcome) > widths.outcome {
			widths.outcome = len(res.Outcome)
		}
	}

	return widths
}

// formatRow pads each value to its column width. A width of 0 means the
// value is the last column and is left unpadded.
func formatRow(pairs ...interface{}) string {
	var sb strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		val := pairs[i].(string)
		width := pairs[i+1].(int)
		if sb.Len() > 0 {
			sb.WriteString("  ")
		}
		if width > 0 {
			sb.WriteString(fmt.Sprintf("%-*s", width, val))
		} else {
			sb.WriteString(val)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
