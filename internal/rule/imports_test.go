package rule

import (
	"strings"
	"testing"
)

func TestAppendImport_AppendsMissingName(t *testing.T) {
	r := AppendImport{
		RuleID: "auth-import",
		Module: "utils.helpers",
		Names:  []string{"check_authentication"},
	}
	content := "import streamlit as st\nfrom utils.helpers import initialize_session_state, clean_dataframe_for_display\n"

	got, detail := r.Apply(content, Target{})

	want := "import streamlit as st\nfrom utils.helpers import initialize_session_state, clean_dataframe_for_display, check_authentication\n"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
	if detail != "appended 1 name" {
		t.Errorf("detail = %q", detail)
	}
}

func TestAppendImport_Guard(t *testing.T) {
	r := AppendImport{RuleID: "auth-import", Module: "utils.helpers", Names: []string{"check_authentication"}}

	tests := []struct {
		name    string
		content string
		applied bool
	}{
		{"name present", "from utils.helpers import check_authentication\n", true},
		{"name among others", "from utils.helpers import a, check_authentication, b\n", true},
		{"name missing", "from utils.helpers import a, b\n", false},
		{"no import line", "import streamlit as st\n", false},
		{"aliased name", "from utils.helpers import check_authentication as check\n", true},
		{"substring name does not count", "from utils.helpers import check_authentication_v2\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Applied(tt.content, Target{}); got != tt.applied {
				t.Errorf("Applied() = %v, want %v", got, tt.applied)
			}
		})
	}
}

func TestAppendImport_NoImportLineIsNoOp(t *testing.T) {
	r := AppendImport{RuleID: "auth-import", Module: "utils.helpers", Names: []string{"check_authentication"}}
	content := "import streamlit as st\n"

	got, detail := r.Apply(content, Target{})
	if got != content {
		t.Error("content changed despite missing import line")
	}
	if !strings.Contains(detail, "no import line") {
		t.Errorf("detail = %q", detail)
	}
}

func TestAppendImport_NeverDuplicates(t *testing.T) {
	r := AppendImport{RuleID: "auth-import", Module: "m", Names: []string{"c"}}
	content := "from m import a, b\n"

	once, _ := r.Apply(content, Target{})
	if once != "from m import a, b, c\n" {
		t.Fatalf("Apply() = %q", once)
	}
	if !r.Applied(once, Target{}) {
		t.Fatal("guard false after apply")
	}

	twice, _ := r.Apply(once, Target{})
	if twice != once {
		t.Errorf("second apply changed content: %q", twice)
	}
}

func TestAppendImport_MultipleNames(t *testing.T) {
	r := AppendImport{RuleID: "auth-import", Module: "m", Names: []string{"c", "d"}}

	got, detail := r.Apply("from m import a, c\n", Target{})
	if got != "from m import a, c, d\n" {
		t.Errorf("Apply() = %q", got)
	}
	if detail != "appended 1 name" {
		t.Errorf("detail = %q", detail)
	}
}

func TestAppendImport_SkipsParenthesizedList(t *testing.T) {
	r := AppendImport{RuleID: "auth-import", Module: "m", Names: []string{"c"}}
	content := "from m import (\n    a,\n    b,\n)\n"

	got, _ := r.Apply(content, Target{})
	if got != content {
		t.Error("parenthesized import list should not be edited")
	}
}

func TestRewriteImport_RewritesBothForms(t *testing.T) {
	r := RewriteImport{RuleID: "helpers-path", FromModule: "lib.utils.helpers", ToModule: "utils.helpers"}
	content := "from lib.utils.helpers import check_authentication\nimport lib.utils.helpers\n"

	got, detail := r.Apply(content, Target{})

	want := "from utils.helpers import check_authentication\nimport utils.helpers\n"
	if got != want {
		t.Errorf("Apply() = %q, want %q", got, want)
	}
	if detail != "rewrote 2 occurrences" {
		t.Errorf("detail = %q", detail)
	}
}

func TestRewriteImport_DoesNotMatchLongerPaths(t *testing.T) {
	r := RewriteImport{RuleID: "helpers-path", FromModule: "lib.utils", ToModule: "utils"}

	tests := []struct {
		name    string
		content string
		changed bool
	}{
		{"exact module", "import lib.utils\n", true},
		{"submodule untouched", "import lib.utils.helpers\n", false},
		{"longer identifier untouched", "import lib.utils2\n", false},
		{"mention in string untouched", "x = \"import lib.utils\"\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := r.Apply(tt.content, Target{})
			if (got != tt.content) != tt.changed {
				t.Errorf("changed = %v, want %v (got %q)", got != tt.content, tt.changed, got)
			}
		})
	}
}

func TestRewriteImport_GuardAndIdempotence(t *testing.T) {
	r := RewriteImport{RuleID: "helpers-path", FromModule: "old.mod", ToModule: "new.mod"}
	content := "from old.mod import x\n"

	if r.Applied(content, Target{}) {
		t.Error("guard true while old imports remain")
	}

	once, _ := r.Apply(content, Target{})
	if !r.Applied(once, Target{}) {
		t.Error("guard false after rewrite")
	}

	twice, _ := r.Apply(once, Target{})
	if twice != once {
		t.Errorf("second apply changed content: %q", twice)
	}
}

func TestRewriteImport_IndentedImport(t *testing.T) {
	r := RewriteImport{RuleID: "helpers-path", FromModule: "old.mod", ToModule: "new.mod"}
	content := "def f():\n    from old.mod import x\n"

	got, _ := r.Apply(content, Target{})
	if got != "def f():\n    from new.mod import x\n" {
		t.Errorf("Apply() = %q", got)
	}
}
