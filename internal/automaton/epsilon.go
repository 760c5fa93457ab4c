package automaton

// RemoveEpsilon returns an equivalent automaton with every eps-transition
// folded into the ordinary transition relation: the returned NFA has no
// outgoing edge labeled eps at all, its initial set is the eps-closure of
// a's initial set, and a state is final iff its eps-closure meets a's
// final set. States keep their original identity (no renumbering), only
// the edge set and init/final marks change — this lets compile-time
// Thompson construction use eps freely and still hand callers an automaton
// that carries no trace of that bookkeeping symbol.
//
// Grounded on the reference library's epsilonClosure BFS
// (LAB_2/regexlib/dfa.go), used here to close single states rather than
// NFA-to-DFA subset-construction frontiers.
func RemoveEpsilon(a *NFA, eps Symbol) *NFA {
	closureOf := make(map[State][]State, a.NumStates())
	for _, s := range a.States() {
		closureOf[s] = epsilonClosureOne(a, s, eps)
	}

	out := New()
	remap := make(map[State]State, a.NumStates())
	for _, s := range a.States() {
		remap[s] = out.AddState()
	}
	for _, s := range a.States() {
		for _, t := range closureOf[s] {
			if a.IsFinal(t) {
				out.SetFinal(remap[s])
				break
			}
		}
	}
	for _, s := range a.InitialStates() {
		for _, t := range closureOf[s] {
			out.SetInitial(remap[t])
		}
	}
	for _, s := range a.States() {
		for _, mid := range closureOf[s] {
			for _, sym := range a.OutSymbols(mid) {
				if sym == eps {
					continue
				}
				for _, tgt := range a.Post(mid, sym) {
					for _, final := range closureOf[tgt] {
						out.AddTransition(remap[s], sym, remap[final])
					}
				}
			}
		}
	}
	return out
}

func epsilonClosureOne(a *NFA, s State, eps Symbol) []State {
	visited := map[State]struct{}{s: {}}
	queue := []State{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range a.Post(cur, eps) {
			if _, ok := visited[t]; !ok {
				visited[t] = struct{}{}
				queue = append(queue, t)
			}
		}
	}
	return sortedKeys(visited)
}
