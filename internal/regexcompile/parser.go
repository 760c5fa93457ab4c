package regexcompile

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// parser is a Pratt parser over the regex-pattern token stream, in the same
// shape as the reference library's parser (LAB_2/regexlib/parser.go),
// retargeted to consume Tokens from the lexmachine-backed Lexer instead of
// scanning runes directly.
type parser struct {
	lex       *Lexer
	look      Token
	nextGroup int
}

func newParser(pattern string) (*parser, error) {
	lex, err := NewLexer(pattern)
	if err != nil {
		return nil, err
	}
	p := &parser{lex: lex, nextGroup: 1}
	if err := p.scan(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) scan() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.look = tok
	return nil
}

func (p *parser) parse() (*astNode, error) { return p.parseExpr(1) }

func precedence(t TokenType) int {
	switch t {
	case TUnion:
		return 1
	case TChar, TLParen, TLBracket, TEpsilon, TBackRef:
		return 2 // implicit concatenation
	case TStar, TPlus, TQMark, TLBrace:
		return 3
	default:
		return 0
	}
}

func (p *parser) parseExpr(minPrec int) (*astNode, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		switch p.look.Type {
		case TStar:
			left = &astNode{typ: nStar, left: left}
			if err := p.scan(); err != nil {
				return nil, err
			}
		case TPlus:
			left = &astNode{typ: nPlus, left: left}
			if err := p.scan(); err != nil {
				return nil, err
			}
		case TQMark:
			left = &astNode{typ: nQMark, left: left}
			if err := p.scan(); err != nil {
				return nil, err
			}
		case TLBrace:
			min, max, err := p.parseRepeat()
			if err != nil {
				return nil, err
			}
			left = &astNode{typ: nRepeat, left: left, min: min, max: max}
		default:
			goto noPostfix
		}
	}
noPostfix:

	for precedence(p.look.Type) >= minPrec {
		isUnion := p.look.Type == TUnion
		prec := 2
		if isUnion {
			prec = 1
			if err := p.scan(); err != nil {
				return nil, err
			}
		}
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		if isUnion {
			left = &astNode{typ: nUnion, left: left, right: right}
		} else {
			left = &astNode{typ: nConcat, left: left, right: right}
		}
	}
	return left, nil
}

func (p *parser) parsePrefix() (*astNode, error) {
	switch p.look.Type {
	case TChar:
		n := charNode(p.look.Ch)
		return n, p.scan()
	case TEpsilon:
		n := &astNode{typ: nEmpty}
		return n, p.scan()
	case TLParen:
		if err := p.scan(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if p.look.Type != TRParen {
			return nil, errors.New("regexcompile: expected )")
		}
		n := &astNode{typ: nGroup, left: inner, grpNum: p.nextGroup}
		p.nextGroup++
		return n, p.scan()
	case TLBracket:
		if err := p.scan(); err != nil {
			return nil, err
		}
		set, err := p.parseCharClass()
		if err != nil {
			return nil, err
		}
		return &astNode{typ: nSet, charset: set}, nil
	case TBackRef:
		n := &astNode{typ: nBackRef, grpNum: p.look.Num}
		return n, p.scan()
	default:
		return nil, errors.Newf("regexcompile: unexpected token %v", p.look.Type)
	}
}

func (p *parser) parseCharClass() ([]rune, error) {
	negate := false
	set := map[rune]struct{}{}

	if p.look.Type == TChar && p.look.Ch == '^' {
		negate = true
		if err := p.scan(); err != nil {
			return nil, err
		}
	}

	for p.look.Type != TRBracket && p.look.Type != TEOF {
		if p.look.Type != TChar {
			return nil, errors.New("regexcompile: invalid char class token")
		}
		start := p.look.Ch
		if err := p.scan(); err != nil {
			return nil, err
		}

		if p.look.Type == TDash {
			if err := p.scan(); err != nil {
				return nil, err
			}
			if p.look.Type != TChar {
				return nil, errors.New("regexcompile: incomplete range")
			}
			end := p.look.Ch
			if err := p.scan(); err != nil {
				return nil, err
			}
			for r := start; r <= end; r++ {
				set[r] = struct{}{}
			}
		} else {
			set[start] = struct{}{}
		}
	}
	if p.look.Type != TRBracket {
		return nil, errors.New("regexcompile: missing ]")
	}
	if err := p.scan(); err != nil {
		return nil, err
	}

	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	if !negate {
		return out, nil
	}
	neg := out[:0]
	for r := rune(0); r < 128; r++ {
		if _, ok := set[r]; !ok {
			neg = append(neg, r)
		}
	}
	return neg, nil
}

func (p *parser) parseRepeat() (int, int, error) {
	if err := p.scan(); err != nil { // '{'
		return 0, 0, err
	}
	min, err := p.parseInt()
	if err != nil {
		return 0, 0, err
	}
	max := min
	if p.look.Type == TComma {
		if err := p.scan(); err != nil {
			return 0, 0, err
		}
		if p.look.Type == TRBrace {
			max = -1
		} else {
			max, err = p.parseInt()
			if err != nil {
				return 0, 0, err
			}
		}
	}
	if p.look.Type != TRBrace {
		return 0, 0, errors.New("regexcompile: expected }")
	}
	return min, max, p.scan()
}

func (p *parser) parseInt() (int, error) {
	digits := ""
	for p.look.Type == TChar && p.look.Ch >= '0' && p.look.Ch <= '9' {
		digits += string(p.look.Ch)
		if err := p.scan(); err != nil {
			return 0, err
		}
	}
	if digits == "" {
		return 0, errors.New("regexcompile: expected number")
	}
	return strconv.Atoi(digits)
}
