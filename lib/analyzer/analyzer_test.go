package analyzer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minicc/minicc/lib/analyzer"
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
	"github.com/minicc/minicc/lib/parser"
)

func analyze(t *testing.T, src string) []diag.Warning {
	t.Helper()
	prog, _, err := parser.ParseString("lint.c", src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}
	return analyzer.Analyze(prog)
}

func codes(warnings []diag.Warning) []diag.Code {
	var out []diag.Code
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.Code
	}{
		{
			name:  "Clean",
			input: "int g = 1; int main(){int x = g; return x;}",
		},
		{
			name:  "Unused local",
			input: "int main(){int x = 1; return 0;}",
			want:  []diag.Code{diag.UnusedVariable},
		},
		{
			name:  "Unused globals are fine",
			input: "int g; int main(){return 0;}",
		},
		{
			name:  "Undeclared return value",
			input: "int main(){return y;}",
			want:  []diag.Code{diag.UndeclaredIdentifier},
		},
		{
			name:  "Local redeclared",
			input: "int main(){int x = 1; int x = 2; return x;}",
			want:  []diag.Code{diag.DuplicateDeclaration},
		},
		{
			name:  "Global redeclared",
			input: "int g; int g = 3; int main(){return g;}",
			want:  []diag.Code{diag.DuplicateDeclaration},
		},
		{
			name:  "Local shadows global",
			input: "int g; int main(){int g = 3; return g;}",
		},
		{
			name:  "Function redefined",
			input: "int main(){return 0;} int main(){return 1;}",
			want:  []diag.Code{diag.DuplicateFunction},
		},
		{
			name:  "Locals do not leak between functions",
			input: "int f(){int a = 1; return a;} int main(){return a;}",
			want:  []diag.Code{diag.UndeclaredIdentifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(analyze(t, tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeMessages(t *testing.T) {
	warnings := analyze(t, "int main(){\n  int x = 1;\n  int x = 2;\n  return x;\n}")
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	want := `lint.c:3:3: "x" is already declared at lint.c:2:3 [duplicate-declaration]`
	if got := warnings[0].String(); got != want {
		t.Errorf("warning = %q, want %q", got, want)
	}
}

func TestScope(t *testing.T) {
	global := analyzer.NewScope()
	if !global.TopLevel() {
		t.Error("root scope should be top level")
	}
	global.Declare(&ast.DeclarationStatement{Type: "int", Identifier: "g"})

	local := global.NewScope()
	if local.TopLevel() {
		t.Error("child scope should not be top level")
	}
	if got := local.TypeOf("g"); got != ast.TypeInt {
		t.Errorf("TypeOf(g) = %q", got)
	}
	if got := local.TypeOf("missing"); got != ast.TypeUnknown {
		t.Errorf("TypeOf(missing) = %q", got)
	}

	if _, redeclared := local.Declare(&ast.DeclarationStatement{Type: "int", Identifier: "g"}); redeclared {
		t.Error("shadowing a parent declaration is not a redeclaration")
	}
	if _, redeclared := local.Declare(&ast.DeclarationStatement{Type: "int", Identifier: "g"}); !redeclared {
		t.Error("second declaration in the same scope should be a redeclaration")
	}
	if n := len(local.Declared()); n != 2 {
		t.Errorf("Declared() has %d entries, want 2", n)
	}
}
