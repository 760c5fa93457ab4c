package afa

import (
	"fmt"
	"strings"

	"noodler/internal/automaton"
)

// symbolTable assigns each original alphabet symbol a sequential remapped
// id on first sight, in the order it is encountered while streaming
// transition formulas — the "monotonically growing table" of spec §4.4.
// Because transitions() always visits segments, states, and symbols in
// ascending order, first sight is reproducible across calls with
// identical input, which is what property P6 requires.
type symbolTable struct {
	index map[automaton.Symbol]int
	next  int
}

func (t *symbolTable) remap(sym automaton.Symbol) int {
	if t.index == nil {
		t.index = map[automaton.Symbol]int{}
	}
	if id, ok := t.index[sym]; ok {
		return id
	}
	id := t.next
	t.index[sym] = id
	t.next++
	return id
}

// encode renders one symbol atom for variable index v, per spec §4.4:
// a big-endian bit-atom block "a_{v*bits+i}" (negated for 0-bits) when
// bit-encoded, or "remapped@t_v" when track-encoded.
func (e *emission) encode(sym automaton.Symbol, v int) string {
	remapped := e.symtab.remap(sym)
	if !e.useBits {
		return fmt.Sprintf("%d@t%d", remapped, v)
	}

	base := v * e.bits
	var literals []string
	for i := 0; i < e.bits; i++ {
		shift := e.bits - 1 - i
		bit := (remapped >> shift) & 1
		name := fmt.Sprintf("a%d", base+i)
		if bit == 0 {
			name = "!" + name
		}
		literals = append(literals, name)
	}
	if len(literals) == 1 {
		return literals[0]
	}
	return "(" + strings.Join(literals, " & ") + ")"
}
