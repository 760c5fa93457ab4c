package automaton

import "sort"

// Alphabet tracks the set of symbols seen so far and hands out a fresh
// value strictly greater than any symbol used, per spec §6's
// EnumAlphabet::from / add_symbols_from / next_value contract.
type Alphabet struct {
	seen map[Symbol]struct{}
	max  Symbol
	any  bool
}

// NewAlphabet returns an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{seen: make(map[Symbol]struct{})}
}

// From builds an alphabet seeded with the given symbols.
func From(syms ...Symbol) *Alphabet {
	a := NewAlphabet()
	for _, s := range syms {
		a.Add(s)
	}
	return a
}

// Add records sym as used.
func (a *Alphabet) Add(sym Symbol) {
	a.seen[sym] = struct{}{}
	if !a.any || sym > a.max {
		a.max = sym
		a.any = true
	}
}

// AddSymbolsFrom records every symbol with at least one outgoing edge
// anywhere in n.
func (a *Alphabet) AddSymbolsFrom(n *NFA) {
	for _, s := range n.States() {
		for _, sym := range n.OutSymbols(s) {
			a.Add(sym)
		}
	}
}

// NextValue returns a symbol strictly greater than any symbol seen so far
// (or 0 if none has been seen) and advances the alphabet's notion of "used"
// to include it, so a second call never returns the same value.
func (a *Alphabet) NextValue() Symbol {
	var next Symbol
	if a.any {
		next = a.max + 1
	}
	a.Add(next)
	return next
}

// Symbols returns every recorded symbol in ascending order.
func (a *Alphabet) Symbols() []Symbol {
	out := make([]Symbol, 0, len(a.seen))
	for s := range a.seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len reports the number of distinct symbols recorded.
func (a *Alphabet) Len() int { return len(a.seen) }

// Contains reports whether sym has been recorded.
func (a *Alphabet) Contains(sym Symbol) bool {
	_, ok := a.seen[sym]
	return ok
}
