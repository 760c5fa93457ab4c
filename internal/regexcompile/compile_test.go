package regexcompile

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"noodler/internal/automaton"
)

// accepts runs a's NFA simulation over syms from its initial states.
func accepts(a *automaton.NFA, syms ...automaton.Symbol) bool {
	cur := map[automaton.State]struct{}{}
	for _, s := range a.InitialStates() {
		cur[s] = struct{}{}
	}
	for _, sym := range syms {
		next := map[automaton.State]struct{}{}
		for s := range cur {
			for _, t := range a.Post(s, sym) {
				next[t] = struct{}{}
			}
		}
		cur = next
	}
	for s := range cur {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

func sym(r rune) automaton.Symbol { return automaton.Symbol(r) }

func TestCompileLiteralConcat(t *testing.T) {
	a, err := Compile("ab")
	require.NoError(t, err)
	require.True(t, accepts(a, sym('a'), sym('b')))
	require.False(t, accepts(a, sym('a')))
	require.False(t, accepts(a, sym('b'), sym('a')))
}

func TestCompileUnion(t *testing.T) {
	a, err := Compile("a|b")
	require.NoError(t, err)
	require.True(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('b')))
	require.False(t, accepts(a, sym('c')))
}

func TestCompileStar(t *testing.T) {
	a, err := Compile("a*")
	require.NoError(t, err)
	require.True(t, accepts(a))
	require.True(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a'), sym('a')))
	require.False(t, accepts(a, sym('b')))
}

func TestCompilePlusRequiresOne(t *testing.T) {
	a, err := Compile("a+")
	require.NoError(t, err)
	require.False(t, accepts(a))
	require.True(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a')))
}

func TestCompileQMark(t *testing.T) {
	a, err := Compile("a?b")
	require.NoError(t, err)
	require.True(t, accepts(a, sym('b')))
	require.True(t, accepts(a, sym('a'), sym('b')))
	require.False(t, accepts(a, sym('a')))
}

func TestCompileRepeatExactBound(t *testing.T) {
	a, err := Compile("a{2,3}")
	require.NoError(t, err)
	require.False(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a'), sym('a')))
	require.False(t, accepts(a, sym('a'), sym('a'), sym('a'), sym('a')))
}

func TestCompileRepeatUnbounded(t *testing.T) {
	a, err := Compile("a{2,}")
	require.NoError(t, err)
	require.False(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a')))
	require.True(t, accepts(a, sym('a'), sym('a'), sym('a'), sym('a'), sym('a')))
}

func TestCompileCharClass(t *testing.T) {
	a, err := Compile("[a-c]")
	require.NoError(t, err)
	require.True(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('b')))
	require.True(t, accepts(a, sym('c')))
	require.False(t, accepts(a, sym('d')))
}

func TestCompileNegatedCharClass(t *testing.T) {
	a, err := Compile("[^a]")
	require.NoError(t, err)
	require.False(t, accepts(a, sym('a')))
	require.True(t, accepts(a, sym('b')))
}

func TestCompileGrouping(t *testing.T) {
	a, err := Compile("(ab)*")
	require.NoError(t, err)
	require.True(t, accepts(a))
	require.True(t, accepts(a, sym('a'), sym('b'), sym('a'), sym('b')))
	require.False(t, accepts(a, sym('a')))
}

func TestCompileEpsilonLiteral(t *testing.T) {
	a, err := Compile("#")
	require.NoError(t, err)
	require.True(t, accepts(a))
}

func TestCompileHasNoEpsilonSymbol(t *testing.T) {
	a, err := Compile("a*b|c+")
	require.NoError(t, err)
	for _, s := range a.States() {
		for _, sy := range a.OutSymbols(s) {
			require.GreaterOrEqual(t, int(sy), 0, "compiled automaton must carry no internal bookkeeping symbol")
		}
	}
}

func TestCompileRejectsBackreference(t *testing.T) {
	_, err := Compile(`(a)\1`)
	require.Error(t, err)
}

func TestCompileRejectsBadRepeatBound(t *testing.T) {
	_, err := Compile("a{3,1}")
	require.Error(t, err)
}

func TestCompileCollectsAlphabetSymbols(t *testing.T) {
	a, err := Compile("abc|abd")
	require.NoError(t, err)
	var syms []int
	for _, s := range a.States() {
		for _, sy := range a.OutSymbols(s) {
			syms = append(syms, int(sy))
		}
	}
	sort.Ints(syms)
	require.NotEmpty(t, syms)
}
