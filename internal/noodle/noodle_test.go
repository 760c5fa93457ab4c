package noodle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noodler/internal/automaton"
	"noodler/internal/registry"
	"noodler/internal/segmentation"
)

const eps automaton.Symbol = 99

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

func TestEnumerateFastPathSingleSegment(t *testing.T) {
	a := chain(1, 2)
	seg, err := segmentation.New(a, eps)
	require.NoError(t, err)
	reg := registry.Build(seg, false, a.NumStates())

	out := Enumerate(seg, reg, false)
	require.Len(t, out, 1)
	require.Len(t, out[0], 1)
}

func TestEnumerateTwoSegmentsOneCombination(t *testing.T) {
	a := automaton.Concatenate(chain(1), chain(2), eps)
	seg, err := segmentation.New(a, eps)
	require.NoError(t, err)
	reg := registry.Build(seg, false, a.NumStates())

	out := Enumerate(seg, reg, false)
	require.Len(t, out, 1)
	require.Len(t, out[0], 2)
}

func TestEnumerateBoundedByCombinationCardinality(t *testing.T) {
	// Two-way branch at depth 0: init --eps--> {m1, m2}, each leading to a
	// final state, giving k_0 = 2.
	a := automaton.New()
	s0 := a.AddState()
	m1 := a.AddState()
	m2 := a.AddState()
	f := a.AddState()
	a.SetInitial(s0)
	a.SetFinal(f)
	a.AddTransition(s0, eps, m1)
	a.AddTransition(s0, eps, m2)
	a.AddTransition(m1, automaton.Symbol(1), f)
	a.AddTransition(m2, automaton.Symbol(2), f)

	seg, err := segmentation.New(a, eps)
	require.NoError(t, err)
	reg := registry.Build(seg, false, a.NumStates())

	out := Enumerate(seg, reg, false)
	require.LessOrEqual(t, len(out), 2)
}

func TestEnumerateSingleAcceptingStateYieldsOneNoodle(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState()
	a.SetInitial(s0)
	a.SetFinal(s0)

	seg, err := segmentation.New(a, eps)
	require.NoError(t, err)
	reg := registry.Build(seg, false, a.NumStates())

	out := Enumerate(seg, reg, false)
	require.Len(t, out, 1)
}
