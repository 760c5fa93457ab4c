package automaton

// Reachable returns every state reachable from the given seed states by any
// edge (including ε, whichever symbol value the caller uses for it), in
// ascending order. Grounded on the reference regex library's
// epsilonClosure/nfaToDFAcore BFS-over-a-frontier shape (LAB_2/regexlib/dfa.go),
// generalized from ε-only closure to closure over every symbol.
func Reachable(a *NFA, from []State) []State {
	visited := make(map[State]struct{}, len(from))
	queue := make([]State, 0, len(from))
	for _, s := range from {
		if _, ok := visited[s]; !ok {
			visited[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range a.OutSymbols(cur) {
			for _, tgt := range a.Post(cur, sym) {
				if _, ok := visited[tgt]; !ok {
					visited[tgt] = struct{}{}
					queue = append(queue, tgt)
				}
			}
		}
	}
	return sortedKeys(visited)
}

// IsLangEmpty decides whether a accepts no word: no final state is
// reachable from any initial state.
func IsLangEmpty(a *NFA) bool {
	for _, s := range Reachable(a, a.InitialStates()) {
		if a.IsFinal(s) {
			return false
		}
	}
	return true
}

// reversed returns the reverse graph of a: same states, every edge flipped.
func reversed(a *NFA) map[State]map[Symbol][]State {
	rev := make(map[State]map[Symbol][]State)
	for _, s := range a.States() {
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				bySym := rev[t]
				if bySym == nil {
					bySym = make(map[Symbol][]State)
					rev[t] = bySym
				}
				bySym[sym] = append(bySym[sym], s)
			}
		}
	}
	return rev
}

// Trim removes every state not lying on some initial-to-final path: it
// keeps the intersection of the forward-reachable set (from initials) and
// the backward-reachable set (to finals). Grounded on the "remove
// unreachable/dead states" pass implicit in the reference library's DFA
// pipeline (Compile trims nothing explicitly because its DFA is built by
// reachable subset construction alone; here Trim makes that reachability
// discipline an explicit, reusable primitive for NFAs built by arbitrary
// means, e.g. Concatenate/Intersection).
func Trim(a *NFA) *NFA {
	fwd := make(map[State]struct{})
	for _, s := range Reachable(a, a.InitialStates()) {
		fwd[s] = struct{}{}
	}
	rev := reversed(a)
	bwdFrom := a.FinalStates()
	visited := make(map[State]struct{}, len(bwdFrom))
	queue := make([]State, 0, len(bwdFrom))
	for _, s := range bwdFrom {
		if _, ok := visited[s]; !ok {
			visited[s] = struct{}{}
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, bySym := range rev[cur] {
			for _, pred := range bySym {
				if _, ok := visited[pred]; !ok {
					visited[pred] = struct{}{}
					queue = append(queue, pred)
				}
			}
		}
	}

	out := New()
	remap := make(map[State]State)
	for _, s := range a.States() {
		if _, okF := fwd[s]; !okF {
			continue
		}
		if _, okB := visited[s]; !okB {
			continue
		}
		remap[s] = out.AddState()
	}
	for old, ns := range remap {
		if a.IsInitial(old) {
			out.SetInitial(ns)
		}
		if a.IsFinal(old) {
			out.SetFinal(ns)
		}
	}
	for old, ns := range remap {
		for _, sym := range a.OutSymbols(old) {
			for _, tgt := range a.Post(old, sym) {
				if nt, ok := remap[tgt]; ok {
					out.AddTransition(ns, sym, nt)
				}
			}
		}
	}
	return out
}

// Concatenate builds L(a)·L(b) by copying a and b into a fresh automaton
// and wiring an ε-edge (the caller-supplied eps symbol) from every final
// state of a to every initial state of b, per spec §6's concatenate
// contract. Grounded on the reference Thompson builder's nConcat case
// (LAB_2/regexlib/nfa.go: patchOuts(f1.outs, f2.start)), generalized from
// single dangling-out patching to a full final×initial ε fan-out.
func Concatenate(a, b *NFA, eps Symbol) *NFA {
	out := New()
	remapA := copyInto(out, a)
	remapB := copyInto(out, b)

	for _, s := range a.InitialStates() {
		out.SetInitial(remapA[s])
	}
	for _, s := range b.FinalStates() {
		out.SetFinal(remapB[s])
	}
	for _, fa := range a.FinalStates() {
		for _, ib := range b.InitialStates() {
			out.AddTransition(remapA[fa], eps, remapB[ib])
		}
	}
	return out
}

// copyInto copies every state and transition of src into dst (without
// copying init/final marks) and returns the src->dst state remap.
func copyInto(dst *NFA, src *NFA) map[State]State {
	remap := make(map[State]State, src.NumStates())
	for _, s := range src.States() {
		remap[s] = dst.AddState()
	}
	for _, s := range src.States() {
		for _, sym := range src.OutSymbols(s) {
			for _, t := range src.Post(s, sym) {
				dst.AddTransition(remap[s], sym, remap[t])
			}
		}
	}
	return remap
}

// pairState identifies a product state by its two components.
type pairState struct {
	a, b State
}

// Intersection builds the product of a and b, treating eps on a's side as
// a self-loop on b's component (b itself must never carry eps), per spec
// §6's "ε on A's side as a self-loop on B" contract. Grounded on the
// reference library's DFA Product (LAB_2/regexlib/setops.go), generalized
// from a total DFA transition function to NFA fan-out and from a uniform
// symbol walk to an ε-aware one.
func Intersection(a, b *NFA, eps Symbol) *NFA {
	out := New()
	mp := make(map[pairState]State)
	var queue []pairState

	get := func(p pairState) (State, bool) {
		s, ok := mp[p]
		return s, ok
	}
	add := func(p pairState) State {
		s := out.AddState()
		mp[p] = s
		if a.IsFinal(p.a) && b.IsFinal(p.b) {
			out.SetFinal(s)
		}
		queue = append(queue, p)
		return s
	}

	for _, ia := range a.InitialStates() {
		for _, ib := range b.InitialStates() {
			p := pairState{ia, ib}
			if _, ok := get(p); !ok {
				s := add(p)
				out.SetInitial(s)
			} else {
				out.SetInitial(mp[p])
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cur := mp[p]

		// ε on a's side: advance a, hold b (self-loop on b).
		for _, na := range a.Post(p.a, eps) {
			np := pairState{na, p.b}
			ns, ok := get(np)
			if !ok {
				ns = add(np)
			}
			out.AddTransition(cur, eps, ns)
		}

		// synchronized non-ε symbols present on both sides.
		for _, sym := range a.OutSymbols(p.a) {
			if sym == eps {
				continue
			}
			bTargets := b.Post(p.b, sym)
			if len(bTargets) == 0 {
				continue
			}
			for _, na := range a.Post(p.a, sym) {
				for _, nb := range bTargets {
					np := pairState{na, nb}
					ns, ok := get(np)
					if !ok {
						ns = add(np)
					}
					out.AddTransition(cur, sym, ns)
				}
			}
		}
	}
	return out
}

// Invert reverses every transition and swaps the initial/final sets,
// producing an automaton for the reverse language. Grounded on the
// reference library's ReverseDFA (LAB_2/regexlib/setops.go), stripped of
// its redeterminization step since this package works at the NFA level and
// the driver's "backward" reduction reduces the inverted automaton and
// then inverts the result back.
func Invert(a *NFA) *NFA {
	out := New()
	remap := make(map[State]State, a.NumStates())
	for _, s := range a.States() {
		remap[s] = out.AddState()
	}
	for _, s := range a.InitialStates() {
		out.SetFinal(remap[s])
	}
	for _, s := range a.FinalStates() {
		out.SetInitial(remap[s])
	}
	for _, s := range a.States() {
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				out.AddTransition(remap[t], sym, remap[s])
			}
		}
	}
	return out
}

// UnifyInitial collapses a possibly-multi-initial automaton into one with
// exactly one initial state, without introducing ε: a fresh state S
// inherits the union of every old initial state's outgoing edges and is
// final iff any old initial state was final. An NFA's semantics already
// treat a multi-state initial set as a nondeterministic choice of start
// state, so this union is language-preserving. Mirrors spec §4.5's
// "collapse multiple initials ... into one via epsilon-free rewiring".
func UnifyInitial(a *NFA) *NFA {
	inits := a.InitialStates()
	if len(inits) <= 1 {
		return a
	}
	out := New()
	remap := copyInto(out, a)
	for _, s := range a.FinalStates() {
		out.SetFinal(remap[s])
	}
	fresh := out.AddState()
	out.SetInitial(fresh)
	initSet := make(map[State]struct{}, len(inits))
	for _, s := range inits {
		initSet[s] = struct{}{}
		if a.IsFinal(s) {
			out.SetFinal(fresh)
		}
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				out.AddTransition(fresh, sym, remap[t])
			}
		}
	}
	return out
}

// UnifyFinal collapses a possibly-multi-final automaton into one with
// exactly one final state: a fresh state F receives every edge that used to
// target an old final state, F is accepting, and the old final states lose
// their finality (their other outgoing edges, if any, are unaffected).
//
// An old final state that was also an old initial state accepts ε without
// ever traversing an incoming edge, so the redirect-incoming-edges rewiring
// above would otherwise silently drop its acceptance; in that case F is
// made initial as well (it has no outgoing edges, so this adds only ε),
// and F stays the only final state.
func UnifyFinal(a *NFA) *NFA {
	finals := a.FinalStates()
	if len(finals) <= 1 {
		return a
	}
	out := New()
	remap := copyInto(out, a)
	for _, s := range a.InitialStates() {
		out.SetInitial(remap[s])
	}
	finalSet := make(map[State]struct{}, len(finals))
	for _, s := range finals {
		finalSet[s] = struct{}{}
	}
	fresh := out.AddState()
	out.SetFinal(fresh)
	for _, s := range a.States() {
		for _, sym := range a.OutSymbols(s) {
			for _, t := range a.Post(s, sym) {
				if _, isFinal := finalSet[t]; isFinal {
					out.AddTransition(remap[s], sym, fresh)
				}
			}
		}
	}
	for _, s := range finals {
		if a.IsInitial(s) {
			out.SetInitial(fresh)
		}
	}
	return out
}
