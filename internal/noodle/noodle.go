// Package noodle enumerates noodles: per spec §4.3, for every combination
// of one ε-transition per depth, a sequence of registry-trimmed segment
// automata pinned end-to-end by those transitions' endpoints. There is no
// single teacher analogue for this enumeration (the reference library has
// no segmentation concept); it follows the teacher's plain-loop,
// no-recursion style elsewhere in the package (e.g. LAB_2/regexlib/nfa.go's
// BFS loops) rather than a generic combinatorics library.
package noodle

import (
	"noodler/internal/automaton"
	"noodler/internal/registry"
	"noodler/internal/segmentation"
)

// Noodle is one pinned sequence of trimmed segment automata, length D+1.
// Elements are shared handles into the registry; callers must not mutate
// them.
type Noodle []*automaton.NFA

// Sequence is the ordered output artifact of one noodlify call.
type Sequence []Noodle

// Enumerate produces the noodle sequence for seg's ε-depths against reg,
// in the canonical mixed-radix combination order required by P6. D = 0
// bypasses the registry entirely per spec §4.3's fast path.
func Enumerate(seg *segmentation.Segmentation, reg *registry.Registry, includeEmpty bool) Sequence {
	depths := seg.EpsilonDepths()
	if len(depths) == 0 {
		return fastPath(seg, includeEmpty)
	}

	radices := make([]int, len(depths))
	n := 1
	for i, d := range depths {
		radices[i] = len(d)
		if radices[i] == 0 {
			return Sequence{}
		}
		n *= radices[i]
	}

	var out Sequence
	for index := 0; index < n; index++ {
		rem := index
		picks := make([]segmentation.EpsilonTransition, len(depths))
		for d := 0; d < len(depths); d++ {
			picks[d] = depths[d][rem%radices[d]]
			rem /= radices[d]
		}
		if nd, ok := assemble(reg, picks); ok {
			out = append(out, nd)
		}
	}
	return out
}

func fastPath(seg *segmentation.Segmentation, includeEmpty bool) Sequence {
	s := seg.Segment(0)
	trimmed := automaton.Trim(s.NFA)
	if automaton.IsLangEmpty(trimmed) && !includeEmpty {
		return Sequence{}
	}
	return Sequence{Noodle{trimmed}}
}

func assemble(reg *registry.Registry, picks []segmentation.EpsilonTransition) (Noodle, bool) {
	unused := reg.Unused()
	d := len(picks)

	first, ok := reg.Lookup(registry.Key{Init: unused, Final: picks[0].Src})
	if !ok {
		return nil, false
	}
	nd := make(Noodle, 0, d+1)
	nd = append(nd, first)

	for i := 0; i+1 < d; i++ {
		mid, ok := reg.Lookup(registry.Key{Init: picks[i].Tgt, Final: picks[i+1].Src})
		if !ok {
			return nil, false
		}
		nd = append(nd, mid)
	}

	last, ok := reg.Lookup(registry.Key{Init: picks[d-1].Tgt, Final: unused})
	if !ok {
		return nil, false
	}
	nd = append(nd, last)

	return nd, true
}
