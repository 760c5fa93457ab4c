package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// Reduce computes the coarsest partition of a's states into blocks that
// agree on acceptance and, recursively, on which blocks their out-edges
// land in, then quotients a by that partition. States in the same block
// are bisimilar, so merging them preserves the accepted language; this is
// a conservative reduction, not minimization (a general NFA's minimal
// equivalent may be smaller still — spec's non-goals explicitly exclude
// chasing that).
//
// Grounded on the reference library's Hopcroft-style partition refinement
// (LAB_2/regexlib/minimize.go), generalized from a DFA's single
// symbol->state transition function to an NFA's symbol->state-set one: the
// per-state signature used for refinement is the sorted set of (symbol,
// target-block) pairs rather than a single target block per symbol.
func Reduce(a *NFA) *NFA {
	states := a.States()
	if len(states) == 0 {
		return a
	}

	blockOf := make(map[State]int, len(states))
	for _, s := range states {
		if a.IsFinal(s) {
			blockOf[s] = 1
		} else {
			blockOf[s] = 0
		}
	}
	numBlocks := 2

	for {
		sigToBlock := make(map[string]int)
		newBlockOf := make(map[State]int, len(states))
		next := 0
		for _, s := range states {
			sig := signature(a, s, blockOf)
			b, ok := sigToBlock[sig]
			if !ok {
				b = next
				sigToBlock[sig] = b
				next++
			}
			newBlockOf[s] = b
		}
		stable := next == numBlocks
		if stable {
			for _, s := range states {
				if blockOf[s] != newBlockOf[s] {
					stable = false
					break
				}
			}
		}
		blockOf = newBlockOf
		numBlocks = next
		if stable {
			break
		}
	}

	out := New()
	blockState := make([]State, numBlocks)
	for i := range blockState {
		blockState[i] = out.AddState()
	}
	seenBlock := make(map[int]bool, numBlocks)
	for _, s := range states {
		b := blockOf[s]
		if seenBlock[b] {
			continue
		}
		seenBlock[b] = true
		if a.IsFinal(s) {
			out.SetFinal(blockState[b])
		}
	}
	for _, s := range a.InitialStates() {
		out.SetInitial(blockState[blockOf[s]])
	}
	addedEdge := make(map[string]bool)
	for _, s := range states {
		from := blockState[blockOf[s]]
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				to := blockState[blockOf[t]]
				key := strconv.Itoa(int(from)) + "/" + strconv.Itoa(int(sym)) + "/" + strconv.Itoa(int(to))
				if addedEdge[key] {
					continue
				}
				addedEdge[key] = true
				out.AddTransition(from, sym, to)
			}
		}
	}
	return out
}

// signature encodes a state's acceptance plus its sorted (symbol,
// target-block) edge set under the current partition, as a comparable
// string key.
func signature(a *NFA, s State, blockOf map[State]int) string {
	var b strings.Builder
	if a.IsFinal(s) {
		b.WriteByte('F')
	} else {
		b.WriteByte('N')
	}
	type pair struct{ sym, block int }
	var pairs []pair
	seen := make(map[pair]bool)
	for _, sym := range a.OutSymbols(s) {
		for _, t := range a.Post(s, sym) {
			p := pair{int(sym), blockOf[t]}
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].sym != pairs[j].sym {
			return pairs[i].sym < pairs[j].sym
		}
		return pairs[i].block < pairs[j].block
	})
	for _, p := range pairs {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(p.sym))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.block))
	}
	return b.String()
}
