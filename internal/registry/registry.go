// Package registry builds the memoized (init, final) -> trimmed
// single-initial/single-final segment automaton map that NoodleEnumerator
// pins noodle boundaries against, following the reference library's
// memoized-subset-automaton map in DFA construction
// (LAB_2/regexlib/dfa.go: `mp[key(set)] = state`) adapted from
// set-of-states keys to (init, final) state-pair keys.
package registry

import (
	"noodler/internal/automaton"
	"noodler/internal/segmentation"
)

// Unused is the sentinel ⊥: a state id distinct from every State used by
// any segment, reserved for the registry's open end-pins. Per spec §3 it
// is conventionally |states| of the ambient automaton; callers pass the
// ambient automaton's size so the sentinel never collides with a real id.
func Unused(ambientStateCount int) automaton.State {
	return automaton.State(ambientStateCount)
}

// Key identifies one trimmed, single-initial/single-final segment
// variant. Init or Final may be the ⊥ sentinel to denote "all of the
// ambient initial/final set was preserved" at the first/last segment.
type Key struct {
	Init, Final automaton.State
}

// Registry is the memoized key -> trimmed segment automaton map.
type Registry struct {
	unused  automaton.State
	entries map[Key]*automaton.NFA
}

// Lookup is total: it reports whether key was ever populated.
func (r *Registry) Lookup(key Key) (*automaton.NFA, bool) {
	nfa, ok := r.entries[key]
	return nfa, ok
}

// Unused exposes the sentinel this registry was built with, so callers
// building Keys for the first/last segment don't have to recompute it.
func (r *Registry) Unused() automaton.State { return r.unused }

// Len reports how many trimmed copies are currently memoized.
func (r *Registry) Len() int { return len(r.entries) }

// Build runs the construction pass of spec §4.2 over every segment in
// seg, producing one trimmed copy per viable (init, final) pin pair.
// includeEmpty keeps copies whose language is empty (normally dropped, to
// respect invariant I2) and unusedStateCount establishes the sentinel.
func Build(seg *segmentation.Segmentation, includeEmpty bool, unusedStateCount int) *Registry {
	r := &Registry{
		unused:  Unused(unusedStateCount),
		entries: map[Key]*automaton.NFA{},
	}
	segments := seg.Segments()
	d := len(segments) - 1

	for _, s := range segments {
		isFirst := s.Index == 0
		isLast := s.Index == d
		switch {
		case isFirst && isLast:
			// The single segment is both first and last: both of spec
			// §4.2's boundary cases apply, one pinned per side.
			for _, f := range s.Final {
				r.insert(Key{Init: r.unused, Final: f}, pin(s, s.Initial, []automaton.State{f}), includeEmpty)
			}
			for _, i := range s.Initial {
				r.insert(Key{Init: i, Final: r.unused}, pin(s, []automaton.State{i}, s.Final), includeEmpty)
			}
		case isFirst:
			for _, f := range s.Final {
				r.insert(Key{Init: r.unused, Final: f}, pin(s, s.Initial, []automaton.State{f}), includeEmpty)
			}
		case isLast:
			for _, i := range s.Initial {
				r.insert(Key{Init: i, Final: r.unused}, pin(s, []automaton.State{i}, s.Final), includeEmpty)
			}
		default:
			for _, i := range s.Initial {
				for _, f := range s.Final {
					r.insert(Key{Init: i, Final: f}, pin(s, []automaton.State{i}, []automaton.State{f}), includeEmpty)
				}
			}
		}
	}

	return r
}

func (r *Registry) insert(key Key, nfa *automaton.NFA, includeEmpty bool) {
	if automaton.IsLangEmpty(nfa) && !includeEmpty {
		return
	}
	r.entries[key] = nfa
}

// pin builds a copy of segment s's automaton with its initial/final sets
// restricted to the ambient states in init/final, then trims it. Ambient
// states absent from the segment (shouldn't happen per I3) are skipped.
func pin(s segmentation.Segment, init, final []automaton.State) *automaton.NFA {
	a := s.NFA
	out := automaton.New()
	remap := make(map[automaton.State]automaton.State, a.NumStates())
	for _, st := range a.States() {
		remap[st] = out.AddState()
	}
	for _, st := range a.States() {
		for _, sym := range a.OutSymbols(st) {
			for _, t := range a.Post(st, sym) {
				out.AddTransition(remap[st], sym, remap[t])
			}
		}
	}
	for _, amb := range init {
		if local, ok := s.Local(amb); ok {
			out.SetInitial(remap[local])
		}
	}
	for _, amb := range final {
		if local, ok := s.Local(amb); ok {
			out.SetFinal(remap[local])
		}
	}
	return automaton.Trim(out)
}
