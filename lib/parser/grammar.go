package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	cclex "github.com/minicc/minicc/lib/lexer"
)

// File is the canonical minicc grammar expressed as participle structs over
// the FSM lexer. It is stricter than the hand-written parser: a function body
// must end right after its return statement. It backs the `ebnf` command and
// serves as an oracle for the hand-written parser in tests.
type File struct {
	Items []*Item `parser:"@@*"`
}

type Item struct {
	Pos lexer.Position

	Type     string        `parser:"@Type"`
	Name     string        `parser:"@Ident"`
	Function *FunctionTail `parser:"( @@"`
	Variable *VariableTail `parser:"| @@ )"`
}

type FunctionTail struct {
	Declarations []*Declaration `parser:"'(' ')' '{' @@*"`
	Return       *Return        `parser:"@@ '}'"`
}

type VariableTail struct {
	Value *Value `parser:"( '=' @@ )? ';'"`
}

type Declaration struct {
	Pos lexer.Position

	Type  string `parser:"@Type"`
	Name  string `parser:"@Ident"`
	Value *Value `parser:"( '=' @@ )? ';'"`
}

type Return struct {
	Value *Value `parser:"'return' @@ ';'"`
}

type Value struct {
	Int   *string `parser:"  @Int"`
	Ident *string `parser:"| @Ident"`
}

var reference = participle.MustBuild[File](
	participle.Lexer(cclex.FSMLexer),
)

// Grammar returns the participle parser for File.
func Grammar() *participle.Parser[File] {
	return reference
}

// ParseReference parses source with the reference grammar.
func ParseReference(filename, source string) (*File, error) {
	return reference.ParseString(filename, source)
}

// FunctionNames lists the names of the functions in f in source order.
func (f *File) FunctionNames() []string {
	var names []string
	for _, item := range f.Items {
		if item.Function != nil {
			names = append(names, item.Name)
		}
	}
	return names
}
