package regexcompile

// nodeType enumerates regex AST node kinds, mirroring the reference
// library's astNode (LAB_2/regexlib/ast.go).
type nodeType int

const (
	nEmpty nodeType = iota // ε
	nChar
	nConcat
	nUnion
	nStar
	nPlus
	nQMark
	nRepeat // {m,n}
	nSet    // character class
	nGroup
	nBackRef
)

type astNode struct {
	typ   nodeType
	left  *astNode
	right *astNode

	ch       rune
	charset  []rune
	min, max int
	grpNum   int
}

func charNode(r rune) *astNode { return &astNode{typ: nChar, ch: r} }
