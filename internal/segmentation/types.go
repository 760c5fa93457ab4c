package segmentation

import "noodler/internal/automaton"

// EpsilonTransition is one ε-edge between two consecutive segments, carried
// verbatim (not just endpoints) so NoodleEnumerator and AFAEmitter can pin
// noodle boundaries to it.
type EpsilonTransition struct {
	Src, Tgt automaton.State
}

// Segment is the sub-automaton induced by the states the layered
// exploration assigns to one ε-depth layer, together with the initial and
// final sets the layering prescribes for that layer (spec §3 "Segment s").
//
// NFA uses a local state numbering private to the segment. Initial and
// Final are kept in terms of the *ambient* automaton's state ids, because
// that is the vocabulary EpsilonTransition and the registry's pin keys
// use; AmbientToLocal translates between the two.
type Segment struct {
	Index          int
	NFA            *automaton.NFA
	Initial        []automaton.State
	Final          []automaton.State
	AmbientStates  []automaton.State
	AmbientToLocal map[automaton.State]automaton.State
}

// Local translates an ambient state id into this segment's local state
// id. The second return is false if the ambient state does not belong to
// this segment.
func (s Segment) Local(ambient automaton.State) (automaton.State, bool) {
	local, ok := s.AmbientToLocal[ambient]
	return local, ok
}
