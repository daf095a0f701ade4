package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gcpanel/pagepatch/internal/errors"
	"github.com/gcpanel/pagepatch/internal/fs"
	"github.com/gcpanel/pagepatch/internal/rule"
)

const validPlan = `version: 1
root: pages
backup_dir: .pagepatch/backup
rules:
  - id: auth-check
    type: insert_after
    anchor: "st.set_page_config("
    marker: "check_authentication()"
    block: |
      from utils.helpers import check_authentication

      if not check_authentication():
          st.stop()
  - id: auth-import
    type: append_import
    module: utils.helpers
    names: [check_authentication]
  - id: helpers-path
    type: rewrite_import
    from_module: lib.utils.helpers
    to_module: utils.helpers
  - id: search-keys
    type: widget_keys
    call: "st.text_input("
    suffix: search
targets:
  - path: 03_RFIs.py
    key_prefix: rfis
  - path: 04_Submittals.py
    key_prefix: submittals
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidPlan(t *testing.T) {
	p, err := Load(fs.NewRealFS(), writePlan(t, validPlan))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.Root != "pages" {
		t.Errorf("Root = %q", p.Root)
	}
	if p.BackupDir != ".pagepatch/backup" {
		t.Errorf("BackupDir = %q", p.BackupDir)
	}
	if len(p.Rules) != 4 {
		t.Fatalf("len(Rules) = %d", len(p.Rules))
	}
	if len(p.Targets) != 2 {
		t.Fatalf("len(Targets) = %d", len(p.Targets))
	}
	if !p.HasWidgetKeys() {
		t.Error("HasWidgetKeys() = false")
	}

	if _, ok := p.Rules[0].(rule.InsertAfter); !ok {
		t.Errorf("Rules[0] = %T, want InsertAfter", p.Rules[0])
	}
	if p.Targets[0] != (rule.Target{Path: "03_RFIs.py", KeyPrefix: "rfis"}) {
		t.Errorf("Targets[0] = %+v", p.Targets[0])
	}
}

func TestLoad_PlanNotFound(t *testing.T) {
	_, err := Load(fs.NewRealFS(), filepath.Join(t.TempDir(), "absent.yaml"))
	if errors.GetCode(err) != errors.EPlanNotFound {
		t.Errorf("code = %q, want E_PLAN_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(fs.NewRealFS(), writePlan(t, "version: [not\n"))
	if errors.GetCode(err) != errors.EInvalidPlan {
		t.Errorf("code = %q, want E_INVALID_PLAN", errors.GetCode(err))
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(fs.NewRealFS(), writePlan(t, strings.Replace(validPlan, "root: pages", "root: pages\nunknown: x", 1)))
	if errors.GetCode(err) != errors.EInvalidPlan {
		t.Errorf("code = %q, want E_INVALID_PLAN for unknown field", errors.GetCode(err))
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			"wrong version",
			func(s string) string { return strings.Replace(s, "version: 1", "version: 2", 1) },
			"unsupported plan version",
		},
		{
			"missing root",
			func(s string) string { return strings.Replace(s, "root: pages\n", "", 1) },
			"root is required",
		},
		{
			"duplicate rule id",
			func(s string) string { return strings.Replace(s, "id: auth-import", "id: auth-check", 1) },
			"duplicate id",
		},
		{
			"bad rule id",
			func(s string) string { return strings.Replace(s, "id: auth-check", "id: Auth Check", 1) },
			"id must match",
		},
		{
			"missing key prefix",
			func(s string) string { return strings.Replace(s, "\n    key_prefix: rfis", "", 1) },
			"key_prefix is required",
		},
		{
			"duplicate target",
			func(s string) string { return strings.Replace(s, "04_Submittals.py", "03_RFIs.py", 1) },
			"duplicate path",
		},
		{
			"marker not in block",
			func(s string) string { return strings.Replace(s, `marker: "check_authentication()"`, `marker: "absent_marker"`, 1) },
			"marker must occur in block",
		},
		{
			"unknown rule type",
			func(s string) string { return strings.Replace(s, "type: widget_keys", "type: mystery", 1) },
			"unknown type",
		},
		{
			"identical rewrite modules",
			func(s string) string { return strings.Replace(s, "to_module: utils.helpers", "to_module: lib.utils.helpers", 1) },
			"identical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fs.NewRealFS(), writePlan(t, tt.mutate(validPlan)))
			if errors.GetCode(err) != errors.EInvalidPlan {
				t.Fatalf("code = %q, want E_INVALID_PLAN (err=%v)", errors.GetCode(err), err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad_NoWidgetKeysNoPrefixNeeded(t *testing.T) {
	content := `version: 1
root: pages
rules:
  - id: helpers-path
    type: rewrite_import
    from_module: a.b
    to_module: c.d
targets:
  - path: 03_RFIs.py
`
	p, err := Load(fs.NewRealFS(), writePlan(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.HasWidgetKeys() {
		t.Error("HasWidgetKeys() = true")
	}
}
