// Package dslfile parses the equation-file format: a sequence of
// per-variable constraint declarations followed by one concatenation
// equation, e.g.
//
//	X : "a(b|c)*" ;
//	Y : "[a-z]+" ;
//	X . Y in "ab[a-z]*" ;
//
// Grounded on the reference interpreter's struct-tag grammar
// (internal/interpreter/parser.go), retargeted from a robot-movement
// script to this declaration/equation format.
package dslfile

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\n\r]+`},
	{Name: "String", Pattern: `"(\\.|[^"])*"`},
	{Name: "In", Pattern: `in\b`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Semi", Pattern: `;`},
})

// declNode is one `NAME : "regex" ;` line.
type declNode struct {
	Name    string `parser:"@Ident Colon"`
	Pattern string `parser:"@String Semi"`
}

// equationNode is the trailing `NAME (. NAME)* in "regex" ;` line.
type equationNode struct {
	Variables []string `parser:"@Ident (Dot @Ident)* In"`
	Pattern   string   `parser:"@String Semi"`
}

// fileNode is the whole equation file: zero or more declarations followed
// by exactly one equation.
type fileNode struct {
	Decls    []*declNode   `parser:"@@*"`
	Equation *equationNode `parser:"@@"`
}

var dslParser = participle.MustBuild[fileNode](
	participle.Lexer(dslLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)
