package regexcompile

import (
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Lexer tokenizes a regex-pattern string into Tokens using a lexmachine
// DFA-backed scanner, in the same style the reference lab uses lexmachine
// to tokenize its robot-control language (LAB_3_Drone/lexer/lexer.go): a
// table of byte-regex rules, each with an Action producing one Token, with
// more specific rules registered before the catch-all literal rule so
// ties on match length resolve in favor of the specific one.
type Lexer struct {
	scanner *lexmachine.Scanner
}

func tok(t TokenType) lexmachine.Action {
	return func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return Token{Type: t}, nil
	}
}

func charTok(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	r, _ := utf8.DecodeRune(m.Bytes)
	return Token{Type: TChar, Ch: r}, nil
}

func escapedCharTok(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	r, _ := utf8.DecodeRune(m.Bytes[1:])
	return Token{Type: TChar, Ch: r}, nil
}

func backRefTok(_ *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return Token{Type: TBackRef, Num: int(m.Bytes[1] - '0')}, nil
}

func buildScanner(pattern string) (*lexmachine.Scanner, error) {
	lex := lexmachine.NewLexer()
	lex.Add([]byte(`[(]`), tok(TLParen))
	lex.Add([]byte(`[)]`), tok(TRParen))
	lex.Add([]byte(`[*]`), tok(TStar))
	lex.Add([]byte(`[+]`), tok(TPlus))
	lex.Add([]byte(`[?]`), tok(TQMark))
	lex.Add([]byte(`[|]`), tok(TUnion))
	lex.Add([]byte(`[\[]`), tok(TLBracket))
	lex.Add([]byte(`[\]]`), tok(TRBracket))
	lex.Add([]byte(`[{]`), tok(TLBrace))
	lex.Add([]byte(`[}]`), tok(TRBrace))
	lex.Add([]byte(`,`), tok(TComma))
	lex.Add([]byte(`-`), tok(TDash))
	lex.Add([]byte(`#`), tok(TEpsilon))
	lex.Add([]byte(`\\[0-9]`), backRefTok)
	lex.Add([]byte(`\\.`), escapedCharTok)
	lex.Add([]byte(`.`), charTok)

	if err := lex.Compile(); err != nil {
		return nil, errors.Wrap(err, "compile regex-pattern lexer")
	}
	scanner, err := lex.Scanner([]byte(pattern))
	if err != nil {
		return nil, errors.Wrap(err, "start regex-pattern scanner")
	}
	return scanner, nil
}

// NewLexer builds a Lexer over pattern.
func NewLexer(pattern string) (*Lexer, error) {
	scanner, err := buildScanner(pattern)
	if err != nil {
		return nil, err
	}
	return &Lexer{scanner: scanner}, nil
}

// Next returns the next Token, or a TEOF token at end of input.
func (l *Lexer) Next() (Token, error) {
	tv, err, eof := l.scanner.Next()
	if eof {
		return Token{Type: TEOF}, nil
	}
	if err != nil {
		return Token{Type: TIllegal}, errors.Wrap(err, "scan regex pattern")
	}
	return tv.(Token), nil
}
