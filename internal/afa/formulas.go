package afa

import (
	"fmt"
	"sort"

	"noodler/internal/automaton"
)

// initial emits %Initial per spec §4.4: the ambient-initial disjunction,
// conjoined (when D >= 1) with a disjunction over initial noodles — the
// Cartesian product of each segment-past-0's initial set.
func (e *emission) initial() error {
	var ambientInits []string
	for _, s := range e.product.InitialStates() {
		ambientInits = append(ambientInits, atom(s))
	}
	ambientPart := disjunction(ambientInits)

	segs := e.seg.Segments()
	var perSegmentInits [][]automaton.State
	for i := 1; i < len(segs); i++ {
		perSegmentInits = append(perSegmentInits, segs[i].Initial)
	}

	formula := ambientPart
	if len(perSegmentInits) > 0 {
		tuples := cartesian(perSegmentInits)
		var disjuncts []string
		for _, tuple := range tuples {
			var conj []string
			for _, s := range tuple {
				conj = append(conj, atom(s), primedAtom(s))
			}
			disjuncts = append(disjuncts, conjunction(conj))
		}
		formula = fmt.Sprintf("%s & %s", ambientPart, disjunction(disjuncts))
	}

	return writeLine(e.w, "%Initial "+formula)
}

// final emits %Final per spec §4.4: the non-final-exclusion conjunct for
// the last segment, conjoined with the per-cross-segment-initial entry
// consistency conjuncts.
func (e *emission) final() error {
	segs := e.seg.Segments()
	last := segs[len(segs)-1]

	finalSet := map[automaton.State]struct{}{}
	for _, f := range last.Final {
		finalSet[f] = struct{}{}
	}
	var exclusion []string
	for _, s := range last.AmbientStates {
		if _, ok := finalSet[s]; !ok {
			exclusion = append(exclusion, negate(atom(s)))
		}
	}
	partA := conjunction(exclusion)

	depths := e.seg.EpsilonDepths()
	var entryConsistency []string
	for segIdx := 1; segIdx < len(segs); segIdx++ {
		prior := segs[segIdx-1]
		priorStates := map[automaton.State]struct{}{}
		for _, s := range prior.AmbientStates {
			priorStates[s] = struct{}{}
		}

		// sourcesOf[tgt] is the set of ε-sources that actually enter tgt at
		// this depth: the legitimate entry edges a path through tgt must
		// have taken, and so must stay excluded from the negated set.
		sourcesOf := map[automaton.State]map[automaton.State]struct{}{}
		for _, tr := range depths[segIdx-1] {
			set, ok := sourcesOf[tr.Tgt]
			if !ok {
				set = map[automaton.State]struct{}{}
				sourcesOf[tr.Tgt] = set
			}
			set[tr.Src] = struct{}{}
		}

		for _, i := range segs[segIdx].Initial {
			excluded := sourcesOf[i]
			var negs []string
			remaining := 0
			for _, s := range sortedStateSet(priorStates) {
				if _, skip := excluded[s]; skip {
					continue
				}
				remaining++
				negs = append(negs, negate(atom(s)))
			}
			if remaining == 0 {
				continue
			}
			entryConsistency = append(entryConsistency,
				fmt.Sprintf("(%s | %s)", negate(primedAtom(i)), conjunction(negs)))
		}
	}
	partB := conjunction(entryConsistency)

	formula := partA
	switch {
	case partA == "true":
		formula = partB
	case partB == "true":
		formula = partA
	default:
		formula = fmt.Sprintf("%s & %s", partA, partB)
	}

	return writeLine(e.w, "%Final "+formula)
}

// transitions emits one "q<State> <formula>" line per reachable state with
// outgoing edges, for every segment named by some variable's Segments list.
// A segment no variable claims is visited by no (varNum, varLoc) pair and
// so contributes no transition line at all, per spec §4.4.
func (e *emission) transitions() error {
	segs := e.seg.Segments()
	for _, seg := range segs {
		v, owned := e.segToVar[seg.Index]
		if !owned {
			continue
		}
		for _, s := range seg.AmbientStates {
			var disjuncts []string
			for _, sym := range e.product.OutSymbols(s) {
				if sym == e.eps {
					continue
				}
				targets := e.product.Post(s, sym)
				var tgtAtoms []string
				for _, t := range targets {
					tgtAtoms = append(tgtAtoms, atom(t))
				}
				enc := e.encode(sym, v)
				disjuncts = append(disjuncts, fmt.Sprintf("(%s & %s)", enc, disjunction(tgtAtoms)))
			}
			if len(disjuncts) == 0 {
				continue
			}
			if err := writeLine(e.w, fmt.Sprintf("q%d %s", s, disjunction(disjuncts))); err != nil {
				return err
			}
		}
	}
	return nil
}

// selfLoopStubs emits "q<i>' q<i>'" for every cross-segment initial i so
// that the primed copy, once entered, persists (spec §4.4).
func (e *emission) selfLoopStubs() error {
	for _, i := range crossSegmentInitials(e.seg) {
		if err := writeLine(e.w, primedAtom(i)+" "+primedAtom(i)); err != nil {
			return err
		}
	}
	return nil
}

func sortedStateSet(in map[automaton.State]struct{}) []automaton.State {
	out := make([]automaton.State, 0, len(in))
	for s := range in {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// cartesian returns the Cartesian product of lists, in mixed-radix
// canonical order matching NoodleEnumerator's enumeration discipline.
func cartesian(lists [][]automaton.State) [][]automaton.State {
	n := 1
	for _, l := range lists {
		if len(l) == 0 {
			return nil
		}
		n *= len(l)
	}
	out := make([][]automaton.State, 0, n)
	for index := 0; index < n; index++ {
		rem := index
		tuple := make([]automaton.State, len(lists))
		for d, l := range lists {
			tuple[d] = l[rem%len(l)]
			rem /= len(l)
		}
		out = append(out, tuple)
	}
	return out
}
