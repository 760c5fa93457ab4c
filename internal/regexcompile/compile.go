// Package regexcompile compiles the per-variable regex mini-language
// (literals, concatenation, union, *, +, ?, {m,n}, character classes,
// grouping) into an automaton.NFA via Thompson's construction, lexed by
// lexmachine and parsed by a hand-written Pratt parser — the source of the
// per-variable and right-hand-side automata that spec §4.5's EquationDriver
// treats as already-built inputs.
package regexcompile

import (
	"github.com/cockroachdb/errors"

	"noodler/internal/automaton"
)

// buildEps is the Thompson-construction bookkeeping symbol. It never
// survives past Compile: automaton.RemoveEpsilon folds it away before the
// NFA is returned, so a compiled automaton's alphabet contains only real
// pattern symbols and the driver's later, freshly-chosen segmentation ε can
// never collide with it.
const buildEps automaton.Symbol = -1

// frag is a Thompson fragment: a start state and the set of states whose
// outgoing edges are still dangling, to be patched to whatever comes next.
type frag struct {
	start automaton.State
	outs  []automaton.State
}

// Compile parses pattern and returns the equivalent ε-free NFA.
func Compile(pattern string) (*automaton.NFA, error) {
	p, err := newParser(pattern)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, errors.Wrapf(err, "parse pattern %q", pattern)
	}

	a := automaton.New()
	f, err := build(a, root)
	if err != nil {
		return nil, err
	}
	accept := a.AddState()
	a.SetFinal(accept)
	patch(a, f.outs, accept)
	a.SetInitial(f.start)

	return automaton.RemoveEpsilon(a, buildEps), nil
}

func patch(a *automaton.NFA, outs []automaton.State, to automaton.State) {
	for _, s := range outs {
		a.AddTransition(s, buildEps, to)
	}
}

// build compiles node into a Thompson fragment within a, in the same
// case-by-case shape as the reference library's buildNFA
// (LAB_2/regexlib/nfa.go), generalized from rune-keyed fragments to
// automaton.Symbol-keyed ones and with exact (not approximate) {m,n}
// expansion.
func build(a *automaton.NFA, node *astNode) (frag, error) {
	switch node.typ {
	case nEmpty:
		s := a.AddState()
		return frag{start: s, outs: []automaton.State{s}}, nil

	case nChar:
		s1 := a.AddState()
		s2 := a.AddState()
		a.AddTransition(s1, automaton.Symbol(node.ch), s2)
		return frag{start: s1, outs: []automaton.State{s2}}, nil

	case nSet:
		s1 := a.AddState()
		s2 := a.AddState()
		for _, r := range node.charset {
			a.AddTransition(s1, automaton.Symbol(r), s2)
		}
		return frag{start: s1, outs: []automaton.State{s2}}, nil

	case nConcat:
		f1, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		f2, err := build(a, node.right)
		if err != nil {
			return frag{}, err
		}
		patch(a, f1.outs, f2.start)
		return frag{start: f1.start, outs: f2.outs}, nil

	case nUnion:
		s := a.AddState()
		f1, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		f2, err := build(a, node.right)
		if err != nil {
			return frag{}, err
		}
		a.AddTransition(s, buildEps, f1.start)
		a.AddTransition(s, buildEps, f2.start)
		outs := append(append([]automaton.State{}, f1.outs...), f2.outs...)
		return frag{start: s, outs: outs}, nil

	case nStar:
		s := a.AddState()
		f, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		patch(a, f.outs, s)
		a.AddTransition(s, buildEps, f.start)
		return frag{start: s, outs: []automaton.State{s}}, nil

	case nPlus:
		f, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		patch(a, f.outs, f.start)
		return f, nil

	case nQMark:
		s := a.AddState()
		f, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		a.AddTransition(s, buildEps, f.start)
		outs := append(append([]automaton.State{}, f.outs...), s)
		return frag{start: s, outs: outs}, nil

	case nRepeat:
		return buildRepeat(a, node)

	case nGroup:
		return build(a, node.left)

	case nBackRef:
		return frag{}, errors.New("regexcompile: backreferences are not expressible as a regular language and cannot be compiled to an automaton")

	default:
		return frag{}, errors.Newf("regexcompile: unknown AST node type %d", node.typ)
	}
}

// buildRepeat expands {min,max} exactly: min mandatory copies, followed by
// either (max-min) sequentially-optional copies, or, when max is
// unbounded, a star of one more copy.
func buildRepeat(a *automaton.NFA, node *astNode) (frag, error) {
	if node.max != -1 && node.max < node.min {
		return frag{}, errors.Newf("regexcompile: repeat bound {%d,%d} has max < min", node.min, node.max)
	}

	var result *frag
	appendFrag := func(f frag) {
		if result == nil {
			result = &f
			return
		}
		patch(a, result.outs, f.start)
		result.outs = f.outs
	}

	for i := 0; i < node.min; i++ {
		f, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		appendFrag(f)
	}

	switch {
	case node.max == -1:
		f, err := build(a, node.left)
		if err != nil {
			return frag{}, err
		}
		starFrag, err := buildStarOf(a, f)
		if err != nil {
			return frag{}, err
		}
		appendFrag(starFrag)
	case node.max > node.min:
		for i := 0; i < node.max-node.min; i++ {
			f, err := build(a, node.left)
			if err != nil {
				return frag{}, err
			}
			optFrag := makeOptional(a, f)
			appendFrag(optFrag)
		}
	}

	if result == nil {
		s := a.AddState()
		return frag{start: s, outs: []automaton.State{s}}, nil
	}
	return *result, nil
}

// buildStarOf wraps an already-built fragment in Kleene star.
func buildStarOf(a *automaton.NFA, f frag) (frag, error) {
	s := a.AddState()
	patch(a, f.outs, s)
	a.AddTransition(s, buildEps, f.start)
	return frag{start: s, outs: []automaton.State{s}}, nil
}

// makeOptional wraps an already-built fragment in "?" (zero-or-one).
func makeOptional(a *automaton.NFA, f frag) frag {
	s := a.AddState()
	a.AddTransition(s, buildEps, f.start)
	outs := append(append([]automaton.State{}, f.outs...), s)
	return frag{start: s, outs: outs}
}
