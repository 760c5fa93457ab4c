package equation

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"noodler/internal/afa"
	"noodler/internal/automaton"
)

func chain(syms ...automaton.Symbol) *automaton.NFA {
	a := automaton.New()
	prev := a.AddState()
	a.SetInitial(prev)
	for _, sym := range syms {
		next := a.AddState()
		a.AddTransition(prev, sym, next)
		prev = next
	}
	a.SetFinal(prev)
	return a
}

// sigmaStar accepts every string over syms.
func sigmaStar(syms ...automaton.Symbol) *automaton.NFA {
	a := automaton.New()
	s := a.AddState()
	a.SetInitial(s)
	a.SetFinal(s)
	for _, sym := range syms {
		a.AddTransition(s, sym, s)
	}
	return a
}

func empty() *automaton.NFA {
	a := automaton.New()
	s := a.AddState()
	a.SetInitial(s)
	return a
}

func TestDegenerateSingleVariable(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1))}
	rhs := sigmaStar(automaton.Symbol(1), automaton.Symbol(2))

	var buf bytes.Buffer
	d := Driver{}
	res, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, []afa.Variable{{Name: "X", Segments: []int{0}}}, false, Config{}, &buf)
	require.NoError(t, err)
	require.Len(t, res.Noodles, 1)
	require.True(t, res.Emitted)
	require.Contains(t, buf.String(), "#AFA was fully printed")
}

func TestImpossibleEquationEmptyLHSLanguage(t *testing.T) {
	lhs := []*automaton.NFA{empty(), chain(automaton.Symbol(1))}
	rhs := sigmaStar(automaton.Symbol(1))

	var buf bytes.Buffer
	d := Driver{}
	res, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, nil, false, Config{}, &buf)
	require.NoError(t, err)
	require.Empty(t, res.Noodles)
	require.False(t, res.Emitted)
	require.Empty(t, buf.String())
}

func TestEmptyLHSSliceShortCircuits(t *testing.T) {
	d := Driver{}
	res, err := d.NoodlifyForEquationOwned(context.Background(), nil, sigmaStar(automaton.Symbol(1)), nil, false, Config{}, nil)
	require.NoError(t, err)
	require.Empty(t, res.Noodles)
}

func TestTwoVariableConcatenation(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1)), chain(automaton.Symbol(1))}
	rhs := chain(automaton.Symbol(1), automaton.Symbol(1))

	d := Driver{}
	vars := []afa.Variable{{Name: "X", Segments: []int{0}}, {Name: "Y", Segments: []int{1}}}
	res, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, vars, false, Config{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Noodles, 1)
	require.Len(t, res.Noodles[0], 2)
}

func TestUnknownReduceValueIgnored(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1))}
	rhs := sigmaStar(automaton.Symbol(1))

	d := Driver{}
	res, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, nil, false, Config{Reduce: "sideways"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Noodles, 1)
}

func TestBidirectionalReducePreservesLanguage(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1), automaton.Symbol(2))}
	rhs := sigmaStar(automaton.Symbol(1), automaton.Symbol(2))

	d := Driver{}
	res, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, nil, false, Config{Reduce: "bidirectional"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Noodles, 1)
}

func TestTracksEncodingSelected(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1))}
	rhs := sigmaStar(automaton.Symbol(1))

	var buf bytes.Buffer
	d := Driver{}
	_, err := d.NoodlifyForEquationOwned(context.Background(), lhs, rhs, nil, false, Config{AFAType: "tracks"}, &buf)
	require.NoError(t, err)
	require.True(t, strings.Contains(buf.String(), "@AFA-explicit"))
}

func TestSharedOverloadAlwaysUnifies(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	a.SetInitial(s0)
	a.SetInitial(s1)
	a.AddTransition(s0, automaton.Symbol(1), s2)
	a.AddTransition(s1, automaton.Symbol(2), s2)
	a.SetFinal(s2)
	rhs := sigmaStar(automaton.Symbol(1), automaton.Symbol(2))

	d := Driver{}
	res, err := d.NoodlifyForEquationShared(context.Background(), []*automaton.NFA{a}, rhs, nil, false, Config{}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Noodles)
}

func TestBuildProductMatchesRunInputs(t *testing.T) {
	lhs := []*automaton.NFA{chain(automaton.Symbol(1)), chain(automaton.Symbol(1))}
	rhs := chain(automaton.Symbol(1), automaton.Symbol(1))

	d := Driver{}
	product, _, _, ok := d.BuildProduct(lhs, rhs, Config{}, false)
	require.True(t, ok)
	require.False(t, automaton.IsLangEmpty(product))
}

func TestBuildProductReportsShortCircuit(t *testing.T) {
	d := Driver{}
	_, _, _, ok := d.BuildProduct(nil, sigmaStar(automaton.Symbol(1)), Config{}, false)
	require.False(t, ok)
}
