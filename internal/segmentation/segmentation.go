// Package segmentation carves an ε-threaded NFA into the ordered sequence
// of segment automata and per-depth ε-transition lists that
// SegmentRegistry, NoodleEnumerator, and AFAEmitter all consume, via a
// layered BFS over the state graph — grounded on the reference library's
// DFA-construction BFS frontier (LAB_2/regexlib/dfa.go: epsilonClosure /
// subset construction), adapted from subset-of-states frontiers to
// single-state depth assignment.
package segmentation

import (
	"sort"

	"noodler/internal/automaton"
)

// Segmentation is the carved result of one ε-threaded NFA: an ordered
// sequence of segments (index 0..D) and the D per-depth ε-transition
// lists that relate consecutive segments.
type Segmentation struct {
	segments      []Segment
	epsilonDepths [][]EpsilonTransition
}

// Segments returns the ordered segment sequence, segments[0..D].
func (s *Segmentation) Segments() []Segment { return s.segments }

// EpsilonDepths returns the depth-indexed ε-transition lists,
// epsilonDepths[0..D-1].
func (s *Segmentation) EpsilonDepths() [][]EpsilonTransition { return s.epsilonDepths }

// Depth returns D, the number of ε-depths (len(Segments())-1).
func (s *Segmentation) Depth() int { return len(s.epsilonDepths) }

// Segment fetches segments[i]; callers must keep i in [0, len(Segments())).
func (s *Segmentation) Segment(i int) Segment { return s.segments[i] }

// New segments the automaton a along eps, returning a
// *MalformedSegmentationError if any ε-edge skips a layer or closes a
// cycle back onto an already-committed depth.
//
// Algorithm: perform a layered forward exploration from a's initial
// states over non-ε edges. Each layer's state set is the non-ε closure of
// its frontier; ε-edges leaving a layer are recorded (not followed) and
// seed the next layer's frontier. A layer's initial set is its frontier
// (the ambient initials for layer 0, or the previous layer's ε-targets
// otherwise); a layer's final set is the sources of its own outgoing
// ε-edges, or — when it has none, meaning it is the last layer — the
// ambient final states it contains.
func New(a *automaton.NFA, eps automaton.Symbol) (*Segmentation, error) {
	depthOf := map[automaton.State]int{}
	var segments []Segment
	var epsilonDepths [][]EpsilonTransition

	frontier := sortedStates(a.InitialStates())
	depth := 0

	for len(frontier) > 0 {
		layerInit := append([]automaton.State(nil), frontier...)

		committed := map[automaton.State]struct{}{}
		var queue []automaton.State
		for _, s := range frontier {
			if d0, ok := depthOf[s]; ok {
				if d0 != depth {
					return nil, newMalformed(s, s, d0, depth, d0)
				}
				continue
			}
			depthOf[s] = depth
			committed[s] = struct{}{}
			queue = append(queue, s)
		}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, sym := range a.OutSymbols(cur) {
				if sym == eps {
					continue
				}
				for _, t := range a.Post(cur, sym) {
					if _, ok := depthOf[t]; ok {
						continue
					}
					depthOf[t] = depth
					committed[t] = struct{}{}
					queue = append(queue, t)
				}
			}
		}

		layerStates := sortedStateSet(committed)

		var trans []EpsilonTransition
		nextSet := map[automaton.State]struct{}{}
		finalSrcs := map[automaton.State]struct{}{}
		for _, src := range layerStates {
			for _, tgt := range a.Post(src, eps) {
				trans = append(trans, EpsilonTransition{Src: src, Tgt: tgt})
				finalSrcs[src] = struct{}{}
				if d0, ok := depthOf[tgt]; ok && d0 != depth+1 {
					return nil, newMalformed(src, tgt, depth, depth+1, d0)
				}
				nextSet[tgt] = struct{}{}
			}
		}
		sort.Slice(trans, func(i, j int) bool {
			if trans[i].Src != trans[j].Src {
				return trans[i].Src < trans[j].Src
			}
			return trans[i].Tgt < trans[j].Tgt
		})

		var layerFinal []automaton.State
		if len(trans) == 0 {
			for _, s := range layerStates {
				if a.IsFinal(s) {
					layerFinal = append(layerFinal, s)
				}
			}
		} else {
			layerFinal = sortedStateSet(finalSrcs)
			epsilonDepths = append(epsilonDepths, trans)
		}

		nfa, ambientToLocal := buildSegmentNFA(a, layerStates, layerInit, layerFinal)
		segments = append(segments, Segment{
			Index:          depth,
			NFA:            nfa,
			Initial:        layerInit,
			Final:          layerFinal,
			AmbientStates:  layerStates,
			AmbientToLocal: ambientToLocal,
		})

		frontier = sortedStateSet(nextSet)
		depth++
	}

	return &Segmentation{segments: segments, epsilonDepths: epsilonDepths}, nil
}

// buildSegmentNFA restricts a to states, keeping every non-ε transition
// whose endpoints both lie in the set, and marks init/final according to
// the ambient-state lists the caller already computed per spec §3.
func buildSegmentNFA(a *automaton.NFA, states, initAmbient, finalAmbient []automaton.State) (*automaton.NFA, map[automaton.State]automaton.State) {
	out := automaton.New()
	remap := make(map[automaton.State]automaton.State, len(states))
	inSet := make(map[automaton.State]struct{}, len(states))
	for _, s := range states {
		remap[s] = out.AddState()
		inSet[s] = struct{}{}
	}
	for _, s := range states {
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				if _, ok := inSet[t]; !ok {
					continue
				}
				out.AddTransition(remap[s], sym, remap[t])
			}
		}
	}
	for _, s := range initAmbient {
		if r, ok := remap[s]; ok {
			out.SetInitial(r)
		}
	}
	for _, s := range finalAmbient {
		if r, ok := remap[s]; ok {
			out.SetFinal(r)
		}
	}
	return out, remap
}

func sortedStates(in []automaton.State) []automaton.State {
	out := append([]automaton.State(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedStateSet(in map[automaton.State]struct{}) []automaton.State {
	out := make([]automaton.State, 0, len(in))
	for s := range in {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
