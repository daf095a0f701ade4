// Package plan handles loading and validation of pagepatch migration plans.
//
// A plan is the declarative replacement for the hard-coded file lists of the
// original migration scripts: it names the page root, the rules to apply,
// and the target files with their per-page parameters.
package plan

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gcpanel/pagepatch/internal/errors"
	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/rule"
)

// SupportedVersion is the only plan schema version understood by this build.
const SupportedVersion = 1

// Rule type names accepted in plan files.
const (
	TypeInsertAfter   = "insert_after"
	TypeAppendImport  = "append_import"
	TypeRewriteImport = "rewrite_import"
	TypeWidgetKeys    = "widget_keys"
)

// Plan is a parsed and validated migration plan.
type Plan struct {
	Root      string
	BackupDir string
	Rules     []rule.Rule
	Targets   []rule.Target
}

// HasWidgetKeys reports whether any rule assigns widget keys; such plans
// require a key_prefix on every target.
func (p *Plan) HasWidgetKeys() bool {
	for _, r := range p.Rules {
		if _, ok := r.(rule.WidgetKeys); ok {
			return true
		}
	}
	return false
}

// document is the raw YAML shape of a plan file.
type document struct {
	Version   int        `yaml:"version"`
	Root      string     `yaml:"root"`
	BackupDir string     `yaml:"backup_dir"`
	Rules     []ruleSpec `yaml:"rules"`
	Targets   []target   `yaml:"targets"`
}

type ruleSpec struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	// insert_after
	Anchor string `yaml:"anchor"`
	Marker string `yaml:"marker"`
	Block  string `yaml:"block"`

	// append_import
	Module string   `yaml:"module"`
	Names  []string `yaml:"names"`

	// rewrite_import
	FromModule string `yaml:"from_module"`
	ToModule   string `yaml:"to_module"`

	// widget_keys
	Call   string `yaml:"call"`
	Suffix string `yaml:"suffix"`
}

type target struct {
	Path      string `yaml:"path"`
	KeyPrefix string `yaml:"key_prefix"`
}

// identRe matches rule ids and key prefixes: lowercase identifier with
// optional dash/underscore separators.
var identRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Load reads, parses, and validates a plan file.
// Returns E_PLAN_NOT_FOUND if the file does not exist and E_INVALID_PLAN for
// malformed YAML or failed validation.
func Load(fsys fs.FS, path string) (*Plan, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(errors.EPlanNotFound, "plan file not found",
				map[string]string{"plan": path})
		}
		return nil, errors.WrapWithDetails(errors.EPlanNotFound, "failed to read plan file", err,
			map[string]string{"plan": path})
	}

	var doc document
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapWithDetails(errors.EInvalidPlan, "invalid yaml: "+err.Error(), err,
			map[string]string{"plan": path})
	}

	p, err := build(&doc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// build validates the raw document and constructs the plan.
func build(doc *document) (*Plan, error) {
	if doc.Version != SupportedVersion {
		return nil, invalid(fmt.Sprintf("unsupported plan version %d (want %d)", doc.Version, SupportedVersion))
	}
	if strings.TrimSpace(doc.Root) == "" {
		return nil, invalid("root is required")
	}
	if len(doc.Rules) == 0 {
		return nil, invalid("at least one rule is required")
	}
	if len(doc.Targets) == 0 {
		return nil, invalid("at least one target is required")
	}

	p := &Plan{
		Root:      doc.Root,
		BackupDir: doc.BackupDir,
	}

	seen := make(map[string]bool, len(doc.Rules))
	for i, spec := range doc.Rules {
		if spec.ID == "" {
			return nil, invalid(fmt.Sprintf("rule %d: id is required", i+1))
		}
		if !identRe.MatchString(spec.ID) {
			return nil, invalid(fmt.Sprintf("rule %q: id must match %s", spec.ID, identRe))
		}
		if seen[spec.ID] {
			return nil, invalid(fmt.Sprintf("rule %q: duplicate id", spec.ID))
		}
		seen[spec.ID] = true

		r, err := buildRule(spec)
		if err != nil {
			return nil, err
		}
		p.Rules = append(p.Rules, r)
	}

	needPrefix := p.HasWidgetKeys()
	seenPath := make(map[string]bool, len(doc.Targets))
	for i, t := range doc.Targets {
		if strings.TrimSpace(t.Path) == "" {
			return nil, invalid(fmt.Sprintf("target %d: path is required", i+1))
		}
		if seenPath[t.Path] {
			return nil, invalid(fmt.Sprintf("target %q: duplicate path", t.Path))
		}
		seenPath[t.Path] = true
		if needPrefix {
			if t.KeyPrefix == "" {
				return nil, invalid(fmt.Sprintf("target %q: key_prefix is required by widget_keys rules", t.Path))
			}
			if !identRe.MatchString(t.KeyPrefix) {
				return nil, invalid(fmt.Sprintf("target %q: key_prefix must match %s", t.Path, identRe))
			}
		}
		p.Targets = append(p.Targets, rule.Target{Path: t.Path, KeyPrefix: t.KeyPrefix})
	}

	return p, nil
}

func buildRule(spec ruleSpec) (rule.Rule, error) {
	switch spec.Type {
	case TypeInsertAfter:
		if spec.Anchor == "" || spec.Marker == "" || spec.Block == "" {
			return nil, invalid(fmt.Sprintf("rule %q: insert_after requires anchor, marker, and block", spec.ID))
		}
		if !strings.Contains(spec.Block, spec.Marker) {
			return nil, invalid(fmt.Sprintf("rule %q: marker must occur in block, or the rule would re-apply forever", spec.ID))
		}
		return rule.InsertAfter{RuleID: spec.ID, Anchor: spec.Anchor, Marker: spec.Marker, Block: spec.Block}, nil

	case TypeAppendImport:
		if spec.Module == "" || len(spec.Names) == 0 {
			return nil, invalid(fmt.Sprintf("rule %q: append_import requires module and names", spec.ID))
		}
		for _, name := range spec.Names {
			if strings.TrimSpace(name) == "" {
				return nil, invalid(fmt.Sprintf("rule %q: empty import name", spec.ID))
			}
		}
		return rule.AppendImport{RuleID: spec.ID, Module: spec.Module, Names: spec.Names}, nil

	case TypeRewriteImport:
		if spec.FromModule == "" || spec.ToModule == "" {
			return nil, invalid(fmt.Sprintf("rule %q: rewrite_import requires from_module and to_module", spec.ID))
		}
		if spec.FromModule == spec.ToModule {
			return nil, invalid(fmt.Sprintf("rule %q: from_module and to_module are identical", spec.ID))
		}
		return rule.RewriteImport{RuleID: spec.ID, FromModule: spec.FromModule, ToModule: spec.ToModule}, nil

	case TypeWidgetKeys:
		if spec.Call == "" || spec.Suffix == "" {
			return nil, invalid(fmt.Sprintf("rule %q: widget_keys requires call and suffix", spec.ID))
		}
		if !strings.HasSuffix(spec.Call, "(") {
			return nil, invalid(fmt.Sprintf("rule %q: call must end with an opening paren", spec.ID))
		}
		return rule.WidgetKeys{RuleID: spec.ID, Call: spec.Call, Suffix: spec.Suffix}, nil

	case "":
		return nil, invalid(fmt.Sprintf("rule %q: type is required", spec.ID))
	default:
		return nil, invalid(fmt.Sprintf("rule %q: unknown type %q", spec.ID, spec.Type))
	}
}

func invalid(msg string) error {
	return errors.New(errors.EInvalidPlan, msg)
}
