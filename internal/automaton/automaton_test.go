package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// chain builds a straight-line automaton accepting exactly the string of
// symbols in syms.
func chain(syms ...Symbol) *NFA {
	a := New()
	s := a.AddState()
	a.SetInitial(s)
	for _, sym := range syms {
		next := a.AddState()
		a.AddTransition(s, sym, next)
		s = next
	}
	a.SetFinal(s)
	return a
}

// noEps is used by accepts() callers that built no ε-transitions at all.
const noEps Symbol = -1

func closure(a *NFA, cur map[State]struct{}, eps Symbol) map[State]struct{} {
	if eps == noEps {
		return cur
	}
	out := make(map[State]struct{}, len(cur))
	queue := make([]State, 0, len(cur))
	for s := range cur {
		out[s] = struct{}{}
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range a.Post(s, eps) {
			if _, ok := out[t]; !ok {
				out[t] = struct{}{}
				queue = append(queue, t)
			}
		}
	}
	return out
}

func acceptsEps(a *NFA, eps Symbol, syms ...Symbol) bool {
	cur := map[State]struct{}{}
	for _, s := range a.InitialStates() {
		cur[s] = struct{}{}
	}
	cur = closure(a, cur, eps)
	for _, sym := range syms {
		next := map[State]struct{}{}
		for s := range cur {
			for _, t := range a.Post(s, sym) {
				next[t] = struct{}{}
			}
		}
		next = closure(a, next, eps)
		cur = next
		if len(cur) == 0 {
			return false
		}
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

func accepts(a *NFA, syms ...Symbol) bool { return acceptsEps(a, noEps, syms...) }

func TestIsLangEmpty(t *testing.T) {
	a := New()
	s := a.AddState()
	a.SetInitial(s)
	require.True(t, IsLangEmpty(a), "no final state reachable")

	a.SetFinal(s)
	require.False(t, IsLangEmpty(a))
}

func TestTrimDropsDeadStates(t *testing.T) {
	a := chain(1, 2)
	dead := a.AddState() // unreachable from initial and not co-reachable
	a.AddTransition(dead, 9, dead)

	trimmed := Trim(a)
	require.Equal(t, 3, trimmed.NumStates())
	require.True(t, accepts(trimmed, 1, 2))
}

func TestConcatenate(t *testing.T) {
	a := chain(1)
	b := chain(2)
	eps := Symbol(100)
	cat := Trim(Concatenate(a, b, eps))

	require.True(t, acceptsEps(cat, eps, 1, 2))
	require.False(t, acceptsEps(cat, eps, 1))
}

func TestIntersection(t *testing.T) {
	a := chain(1, 2)
	b := New()
	bs := b.AddState()
	b.SetInitial(bs)
	b1 := b.AddState()
	b.AddTransition(bs, 1, b1)
	b2 := b.AddState()
	b.AddTransition(b1, 2, b2)
	b.SetFinal(b2)

	eps := Symbol(100)
	p := Intersection(a, b, eps)
	require.False(t, IsLangEmpty(p))
	require.True(t, accepts(p, 1, 2))
	require.False(t, accepts(p, 1))
}

func TestIntersectionRejectsMismatch(t *testing.T) {
	a := chain(1, 2)
	b := chain(3, 4)
	eps := Symbol(100)
	p := Intersection(a, b, eps)
	require.True(t, IsLangEmpty(p))
}

func TestInvertReversesAcceptance(t *testing.T) {
	a := chain(1, 2)
	rev := Invert(a)
	require.True(t, accepts(rev, 2, 1))
	require.False(t, accepts(rev, 1, 2))
}

func TestUnifyInitialSingleState(t *testing.T) {
	a := New()
	i1 := a.AddState()
	i2 := a.AddState()
	a.SetInitial(i1)
	a.SetInitial(i2)
	f := a.AddState()
	a.AddTransition(i1, 1, f)
	a.AddTransition(i2, 2, f)
	a.SetFinal(f)

	u := UnifyInitial(a)
	require.Len(t, u.InitialStates(), 1)
	require.True(t, accepts(u, 1))
	require.True(t, accepts(u, 2))
}

func TestUnifyFinalSingleState(t *testing.T) {
	a := New()
	i := a.AddState()
	a.SetInitial(i)
	f1 := a.AddState()
	f2 := a.AddState()
	a.AddTransition(i, 1, f1)
	a.AddTransition(i, 2, f2)
	a.SetFinal(f1)
	a.SetFinal(f2)

	u := UnifyFinal(a)
	require.Len(t, u.FinalStates(), 1)
	require.True(t, accepts(u, 1))
	require.True(t, accepts(u, 2))
}

// TestUnifyFinalPreservesInitialFinalState covers a state that is both
// initial and final (an automaton accepting ε, e.g. the Thompson build of
// `a?`): UnifyFinal must not drop that state's acceptance of ε just
// because it has no incoming edge to redirect.
func TestUnifyFinalPreservesInitialFinalState(t *testing.T) {
	a := New()
	i := a.AddState()
	a.SetInitial(i)
	a.SetFinal(i)
	f2 := a.AddState()
	a.AddTransition(i, 1, f2)
	a.SetFinal(f2)

	u := UnifyFinal(a)
	require.Len(t, u.FinalStates(), 1)
	require.True(t, accepts(u))
	require.True(t, accepts(u, 1))
}

func TestReduceMergesEquivalentStates(t *testing.T) {
	a := New()
	i := a.AddState()
	a.SetInitial(i)
	f1 := a.AddState()
	f2 := a.AddState()
	a.AddTransition(i, 1, f1)
	a.AddTransition(i, 1, f2)
	a.SetFinal(f1)
	a.SetFinal(f2)

	r := Reduce(a)
	require.Less(t, r.NumStates(), a.NumStates())
	require.True(t, accepts(r, 1))
}

func TestAlphabetNextValueExceedsSeen(t *testing.T) {
	alpha := From(0, 1, 5)
	n := alpha.NextValue()
	require.Greater(t, int(n), 5)
	require.True(t, alpha.Contains(n))

	n2 := alpha.NextValue()
	require.Greater(t, n2, n)
}

