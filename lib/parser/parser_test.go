package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/minicc/minicc/lib/ast"
	"github.com/minicc/minicc/lib/diag"
	cclex "github.com/minicc/minicc/lib/lexer"
)

var ignorePos = cmpopts.IgnoreTypes(lexer.Position{})

func mustParse(t *testing.T, src string, opts ...Option) (*ast.Program, []diag.Warning) {
	t.Helper()
	prog, warnings, err := ParseString("test.c", src, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", src, err)
	}
	if prog == nil {
		t.Fatalf("ParseString(%q) returned no program", src)
	}
	return prog, warnings
}

func TestParseMinimal(t *testing.T) {
	prog, warnings := mustParse(t, "int main(){return 0;}")

	want := &ast.Program{
		Functions: []*ast.FunctionDefinition{{
			ReturnType: "int",
			Name:       "main",
			Body: &ast.CompoundStatement{
				Return: &ast.ReturnStatement{
					Value: &ast.Expression{Type: "int", Value: "0"},
				},
			},
		}},
	}
	if diff := cmp.Diff(want, prog, ignorePos); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	main := prog.Main()
	if main.Pos != (lexer.Position{Filename: "test.c", Line: 1, Column: 1}) {
		t.Errorf("main position = %v", main.Pos)
	}
	if got := main.Body.Return.Value.Pos; got.Column != 19 {
		t.Errorf("return value column = %d, want 19", got.Column)
	}
}

func TestParseDeclarationAndIdentifierReturn(t *testing.T) {
	prog, warnings := mustParse(t, "int main(){int x = 5; return x;}")

	want := &ast.Program{
		Functions: []*ast.FunctionDefinition{{
			ReturnType: "int",
			Name:       "main",
			Body: &ast.CompoundStatement{
				Declarations: []*ast.DeclarationStatement{{
					Type:       "int",
					Identifier: "x",
					AssignOp:   "=",
					Value:      &ast.Expression{Type: "int", Value: "5"},
				}},
				Return: &ast.ReturnStatement{
					Value: &ast.Expression{Type: "int", Value: "x", Identifier: true},
				},
			},
		}},
	}
	if diff := cmp.Diff(want, prog, ignorePos); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestParseGlobals(t *testing.T) {
	src := `int g = 7;
int h;

int helper() {
	return g;
}

int main() {
	int x = g;
	int y;
	return h;
}
`
	prog, warnings := mustParse(t, src)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	wantGlobals := []*ast.DeclarationStatement{
		{Type: "int", Identifier: "g", AssignOp: "=", Value: &ast.Expression{Type: "int", Value: "7"}},
		{Type: "int", Identifier: "h"},
	}
	if diff := cmp.Diff(wantGlobals, prog.Declarations, ignorePos); diff != "" {
		t.Errorf("globals mismatch (-want +got):\n%s", diff)
	}

	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
	main := prog.Main()
	if main == nil {
		t.Fatal("main not found")
	}
	x := main.Body.Declarations[0]
	if x.Value.Type != ast.TypeInt || !x.Value.Identifier {
		t.Errorf("x initializer = %+v, want identifier of type int", x.Value)
	}
	if x.Pos != (lexer.Position{Filename: "test.c", Line: 9, Column: 2}) {
		t.Errorf("x position = %v", x.Pos)
	}
}

func TestParseIgnoresStatementsAfterReturn(t *testing.T) {
	prog, _ := mustParse(t, "int main(){int a = 1; return a; int b = 2;}")

	body := prog.Main().Body
	if len(body.Declarations) != 1 || body.Declarations[0].Identifier != "a" {
		t.Errorf("declarations = %+v, want only a", body.Declarations)
	}
	if body.Return.Value.Value != "a" {
		t.Errorf("return value = %q", body.Return.Value.Value)
	}
}

// Initializer type mismatches only warn unless strict typing is requested.
func TestParseTypeMismatchWarnsByDefault(t *testing.T) {
	src := "int main(){int x = y; return 0;}"
	prog, warnings := mustParse(t, src)

	decl := prog.Main().Body.Declarations[0]
	if decl.Value == nil || decl.Value.Value != "y" || decl.Value.Type != ast.TypeUnknown {
		t.Errorf("declaration not retained as parsed: %+v", decl)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	w := warnings[0]
	if w.Code != diag.TypeMismatch {
		t.Errorf("warning code = %s", w.Code)
	}
	if w.Pos != (lexer.Position{Filename: "test.c", Line: 1, Column: 20}) {
		t.Errorf("warning position = %v", w.Pos)
	}
}

func TestParseTypeMismatchStrict(t *testing.T) {
	src := "int main(){int x = y; return 0;}"
	prog, _, err := ParseString("test.c", src, WithStrictTypes(true))
	if prog != nil {
		t.Errorf("expected no program, got %+v", prog)
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *Error", err)
	}
	if perr.Index != 8 || perr.Actual.Text != "y" {
		t.Errorf("error = %+v", perr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     ErrorKind
		index    int
		expected []cclex.Kind
		actual   string
		function string
	}{
		{
			name:     "Missing semicolon after return",
			input:    "int main(){return 0}",
			kind:     UnexpectedToken,
			index:    7,
			expected: []cclex.Kind{cclex.Semicolon},
			actual:   "}",
		},
		{
			name:  "No main",
			input: "int helper(){return 1;}",
			kind:  MissingMain,
			index: 9,
		},
		{
			name:  "Empty input",
			input: "",
			kind:  MissingMain,
		},
		{
			name:     "Return in global initializer",
			input:    "int x = return;",
			kind:     UnexpectedToken,
			index:    3,
			expected: []cclex.Kind{cclex.IntegerLiteral, cclex.Identifier},
			actual:   "return",
		},
		{
			name:     "Unclosed body",
			input:    "int main(){return 0;",
			kind:     MalformedBlock,
			index:    4,
			expected: []cclex.Kind{cclex.CloseBrace},
			actual:   "{",
		},
		{
			name:     "Unclosed parameter list",
			input:    "int main({return 0;}",
			kind:     MalformedBlock,
			index:    2,
			expected: []cclex.Kind{cclex.CloseParen},
			actual:   "(",
		},
		{
			name:     "Parameters are not supported",
			input:    "int main(x){return 0;}",
			kind:     UnexpectedToken,
			index:    3,
			expected: []cclex.Kind{cclex.CloseParen},
			actual:   "x",
		},
		{
			name:     "No return",
			input:    "int main(){int x = 1;}",
			kind:     MissingReturn,
			index:    10,
			function: "main",
		},
		{
			name:     "Return of a later function does not count",
			input:    "int f(){int a;} int main(){return 0;}",
			kind:     MissingReturn,
			index:    8,
			function: "f",
		},
		{
			name:     "Stray token in body",
			input:    "int main(){x; return 0;}",
			kind:     UnexpectedToken,
			index:    5,
			expected: []cclex.Kind{cclex.TypeKeyword, cclex.ControlKeyword},
			actual:   "x",
		},
		{
			name:     "Missing identifier in declaration",
			input:    "int main(){int = 1; return 0;}",
			kind:     UnexpectedToken,
			index:    6,
			expected: []cclex.Kind{cclex.Identifier},
			actual:   "=",
		},
		{
			name:     "Missing initializer",
			input:    "int main(){int x = ; return 0;}",
			kind:     UnexpectedToken,
			index:    8,
			expected: []cclex.Kind{cclex.IntegerLiteral, cclex.Identifier},
			actual:   ";",
		},
		{
			name:     "Stray top-level token",
			input:    "return 0; int main(){return 0;}",
			kind:     UnexpectedToken,
			index:    0,
			expected: []cclex.Kind{cclex.TypeKeyword},
			actual:   "return",
		},
		{
			name:     "Input ends inside declaration",
			input:    "int main",
			kind:     UnexpectedEndOfInput,
			index:    1,
			expected: []cclex.Kind{cclex.Semicolon},
		},
		{
			name:     "Input ends after type",
			input:    "int main(){return 0;} int",
			kind:     UnexpectedEndOfInput,
			index:    9,
			expected: []cclex.Kind{cclex.Identifier},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, _, err := ParseString("test.c", tt.input)
			if prog != nil {
				t.Errorf("expected no program, got %+v", prog)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if perr.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s (%v)", perr.Kind, tt.kind, err)
			}
			if !errors.Is(err, tt.kind.sentinel()) {
				t.Errorf("error does not match its sentinel")
			}
			if perr.Index != tt.index {
				t.Errorf("index = %d, want %d", perr.Index, tt.index)
			}
			if diff := cmp.Diff(tt.expected, perr.Expected); diff != "" {
				t.Errorf("expected kinds mismatch (-want +got):\n%s", diff)
			}
			if perr.Actual.Text != tt.actual {
				t.Errorf("actual = %q, want %q", perr.Actual.Text, tt.actual)
			}
			if perr.Function != tt.function {
				t.Errorf("function = %q, want %q", perr.Function, tt.function)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int main(){return 0}", `expected semicolon, got close-brace "}" at token 7`},
		{"int helper(){return 1;}", "program has no main function"},
		{"int main(){int x = 1;}", `function "main" has no return statement`},
		{"int main(){return 0;", "no matching close-brace for the block opened at token 4"},
		{"int main", "unexpected end of input after token 1: expected semicolon"},
		{"int main(){x; return 0;}", `expected type-keyword or control-keyword, got identifier "x" at token 5`},
	}
	for _, tt := range tests {
		_, _, err := ParseString("", tt.input)
		if err == nil {
			t.Errorf("%q: expected error", tt.input)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("%q: error = %q, want %q", tt.input, err.Error(), tt.want)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	_, _, err := ParseString("pos.c", "int main() {\n  return 0\n}")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Pos != (lexer.Position{Filename: "pos.c", Line: 3, Column: 1}) {
		t.Errorf("position = %v", perr.Pos)
	}

	_, _, err = ParseString("pos.c", "int main")
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Pos != (lexer.Position{Filename: "pos.c", Line: 1, Column: 9}) {
		t.Errorf("end of input position = %v", perr.Pos)
	}
}

func TestParseStringLexicalError(t *testing.T) {
	prog, _, err := ParseString("at.c", "int main(){return @;}")
	if prog != nil {
		t.Errorf("expected no program")
	}
	if !errors.Is(err, cclex.ErrLexical) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	var lexErr *cclex.Error
	if !errors.As(err, &lexErr) || lexErr.Char != '@' || lexErr.Column != 19 {
		t.Errorf("lexical error = %+v", lexErr)
	}
}

func TestParseStringKeepsLexerWarnings(t *testing.T) {
	_, warnings, err := ParseString("w.c", "int 2x;")
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("expected unexpected token, got %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != diag.NumberFollowedByIdentifier {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestScanForward(t *testing.T) {
	tokens, err := cclex.Tokenize("int main(){return 0;}")
	if err != nil {
		t.Fatal(err)
	}
	p := New(tokens)

	tests := []struct {
		from  int
		kinds []cclex.Kind
		index int
		text  string
	}{
		{0, []cclex.Kind{cclex.CloseBrace}, 8, "}"},
		{0, []cclex.Kind{cclex.OpenParen, cclex.OpenBrace}, 2, "("},
		{5, []cclex.Kind{cclex.ControlKeyword}, 5, "return"},
		{6, []cclex.Kind{cclex.ControlKeyword}, 9, ""},
		{0, []cclex.Kind{cclex.Equals}, 9, ""},
		{9, []cclex.Kind{cclex.CloseBrace}, 9, ""},
	}
	for _, tt := range tests {
		index, tok := p.scanForward(tt.from, tt.kinds...)
		if index != tt.index || tok.Text != tt.text {
			t.Errorf("scanForward(%d, %v) = %d, %v; want %d, %q", tt.from, tt.kinds, index, tok, tt.index, tt.text)
		}
		if index == len(tokens) && tok != (cclex.Token{}) {
			t.Errorf("scanForward(%d, %v) returned non-empty sentinel %v", tt.from, tt.kinds, tok)
		}
	}
	if p.pos != 0 {
		t.Errorf("scanForward moved the cursor to %d", p.pos)
	}
}

func TestParserReuse(t *testing.T) {
	tokens, err := cclex.Tokenize("int main(){int x = y; return x;}")
	if err != nil {
		t.Fatal(err)
	}
	p := New(tokens)

	first, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	firstWarnings := p.Warnings()

	second, err := p.ParseProgram()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second parse differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstWarnings, p.Warnings()); diff != "" {
		t.Errorf("warnings differ (-first +second):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	if err := os.WriteFile(path, []byte("int main() {\n\treturn 3;\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	prog, _, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	ret := prog.Main().Body.Return
	if ret.Value.Value != "3" || ret.Pos != (lexer.Position{Filename: path, Line: 2, Column: 2}) {
		t.Errorf("return = %+v at %v", ret.Value, ret.Pos)
	}

	if _, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.c")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}
