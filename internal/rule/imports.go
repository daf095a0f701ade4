package rule

import (
	"fmt"
	"regexp"
	"strings"
)

// AppendImport appends names to an existing single-line import statement
// of the form "from <module> import a, b". The import list is parsed into
// entries and re-serialized, rather than edited with a raw regex, so a name
// is never duplicated and never matched inside another name.
//
// Parenthesized and multi-line import lists are not recognized; such files
// report a no-match.
type AppendImport struct {
	RuleID string

	// Module is the source module path (e.g. "utils.helpers").
	Module string

	// Names are the names to ensure on the import line, in order.
	Names []string
}

func (r AppendImport) ID() string { return r.RuleID }

// Applied reports whether an import line for the module exists and already
// carries every requested name.
func (r AppendImport) Applied(content string, _ Target) bool {
	line, _, ok := r.findImportLine(content)
	if !ok {
		return false
	}
	entries := parseImportList(line[len(r.prefix()):])
	for _, name := range r.Names {
		if !hasImportName(entries, name) {
			return false
		}
	}
	return true
}

// Apply appends the missing names to the module's import line. If the file
// has no import line for the module the content is returned unchanged.
func (r AppendImport) Apply(content string, _ Target) (string, string) {
	line, idx, ok := r.findImportLine(content)
	if !ok {
		return content, fmt.Sprintf("no import line for module %s", r.Module)
	}

	entries := parseImportList(line[len(r.prefix()):])
	appended := 0
	for _, name := range r.Names {
		if hasImportName(entries, name) {
			continue
		}
		entries = append(entries, name)
		appended++
	}
	if appended == 0 {
		return content, "all names already imported"
	}

	lines := strings.Split(content, "\n")
	lines[idx] = r.prefix() + strings.Join(entries, ", ")

	noun := "name"
	if appended > 1 {
		noun = "names"
	}
	return strings.Join(lines, "\n"), fmt.Sprintf("appended %d %s", appended, noun)
}

func (r AppendImport) prefix() string {
	return "from " + r.Module + " import "
}

// findImportLine returns the first top-level import line for the module,
// its index, and whether one was found. Parenthesized lists are skipped.
func (r AppendImport) findImportLine(content string) (string, int, bool) {
	prefix := r.prefix()
	for i, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := line[len(prefix):]
		if strings.HasPrefix(strings.TrimSpace(rest), "(") {
			continue
		}
		return line, i, true
	}
	return "", -1, false
}

// parseImportList splits "a, b as c" into trimmed entries.
func parseImportList(list string) []string {
	var entries []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

// hasImportName reports whether name appears as an entry, either directly
// ("name"), as an aliased source ("name as x"), or as an alias ("x as name").
func hasImportName(entries []string, name string) bool {
	for _, entry := range entries {
		if entry == name {
			return true
		}
		fields := strings.Fields(entry)
		if len(fields) == 3 && fields[1] == "as" && (fields[0] == name || fields[2] == name) {
			return true
		}
	}
	return false
}

// RewriteImport rewrites the module path of import statements, covering both
// "from <old> import ..." and "import <old>" forms. The old path only
// matches as a whole module path, never as a prefix of a longer one.
type RewriteImport struct {
	RuleID string

	// FromModule is the module path to replace (e.g. "lib.utils.helpers").
	FromModule string

	// ToModule is the replacement module path (e.g. "utils.helpers").
	ToModule string
}

func (r RewriteImport) ID() string { return r.RuleID }

func (r RewriteImport) pattern() *regexp.Regexp {
	// Anchored to the statement keyword so the path never matches inside
	// strings or attribute accesses. The trailing group rejects longer
	// module paths (old.more) and longer identifiers (olderX).
	return regexp.MustCompile(`(?m)^(\s*(?:from|import)\s+)` + regexp.QuoteMeta(r.FromModule) + `($|[^.\w])`)
}

// Applied reports whether no import of the old module path remains.
func (r RewriteImport) Applied(content string, _ Target) bool {
	return !r.pattern().MatchString(content)
}

// Apply rewrites every import of the old module path.
func (r RewriteImport) Apply(content string, _ Target) (string, string) {
	re := r.pattern()
	matches := re.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, "no imports of " + r.FromModule
	}

	out := re.ReplaceAllString(content, "${1}"+r.ToModule+"${2}")

	noun := "occurrence"
	if len(matches) > 1 {
		noun = "occurrences"
	}
	return out, fmt.Sprintf("rewrote %d %s", len(matches), noun)
}
