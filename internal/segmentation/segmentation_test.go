package segmentation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noodler/internal/automaton"
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

func TestSegmentationNoEpsilonIsOneSegment(t *testing.T) {
	a := chain(1, 2)
	seg, err := New(a, eps)
	require.NoError(t, err)
	require.Len(t, seg.Segments(), 1)
	require.Equal(t, 0, seg.Depth())
	require.Empty(t, seg.EpsilonDepths())
}

func TestSegmentationTwoSegmentsOneEpsilon(t *testing.T) {
	left := chain(1)
	right := chain(2)
	a := automaton.Concatenate(left, right, eps)

	seg, err := New(a, eps)
	require.NoError(t, err)
	require.Len(t, seg.Segments(), 2)
	require.Equal(t, 1, seg.Depth())
	require.Len(t, seg.EpsilonDepths()[0], 1)

	s0 := seg.Segment(0)
	require.NotEmpty(t, s0.NFA.InitialStates())
	require.NotEmpty(t, s0.NFA.FinalStates())

	s1 := seg.Segment(1)
	require.NotEmpty(t, s1.NFA.InitialStates())
	require.NotEmpty(t, s1.NFA.FinalStates())
}

func TestSegmentationThreeSegments(t *testing.T) {
	a := automaton.Concatenate(automaton.Concatenate(chain(1), chain(2), eps), chain(3), eps)
	seg, err := New(a, eps)
	require.NoError(t, err)
	require.Len(t, seg.Segments(), 3)
	require.Equal(t, 2, seg.Depth())
	require.Len(t, seg.EpsilonDepths()[0], 1)
	require.Len(t, seg.EpsilonDepths()[1], 1)
}

func TestSegmentationRejectsCrossLayerEpsilon(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	a.SetInitial(s0)
	a.SetFinal(s2)
	a.AddTransition(s0, eps, s1)
	a.AddTransition(s0, eps, s2) // skips the s1 layer
	a.AddTransition(s1, eps, s2)

	_, err := New(a, eps)
	require.Error(t, err)
}

func TestSegmentationRejectsEpsilonCycle(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState()
	s1 := a.AddState()
	a.SetInitial(s0)
	a.SetFinal(s1)
	a.AddTransition(s0, eps, s1)
	a.AddTransition(s1, eps, s0)

	_, err := New(a, eps)
	require.Error(t, err)
}

func TestSegmentationEpsilonTargetsBecomeNextInitial(t *testing.T) {
	left := chain(1)
	right := chain(2)
	a := automaton.Concatenate(left, right, eps)

	seg, err := New(a, eps)
	require.NoError(t, err)
	require.Len(t, seg.EpsilonDepths()[0], 1)

	s1 := seg.Segment(1)
	require.Len(t, s1.NFA.InitialStates(), 1)
}
