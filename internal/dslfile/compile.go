package dslfile

import (
	"github.com/cockroachdb/errors"

	"noodler/internal/afa"
	"noodler/internal/automaton"
	"noodler/internal/regexcompile"
)

// Compiled is an EquationSpec with every pattern already turned into an
// automaton, ready to hand to the equation driver.
type Compiled struct {
	LHS       []*automaton.NFA
	RHS       *automaton.NFA
	Variables []afa.Variable
}

// Compile compiles every pattern in spec, in equation order, and derives
// variableLocations: since EquationDriver's Concatenate inserts exactly
// one ε between each consecutive LHS pair, variable i always lands at
// segment index i of the product.
func Compile(spec *EquationSpec) (*Compiled, error) {
	out := &Compiled{}
	for i, name := range spec.EquationVariables {
		pattern, ok := spec.ConstraintOf(name)
		if !ok {
			return nil, errors.Newf("dslfile: no constraint declared for %q", name)
		}
		nfa, err := regexcompile.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "dslfile: compile constraint for %q", name)
		}
		out.LHS = append(out.LHS, nfa)
		out.Variables = append(out.Variables, afa.Variable{Name: name, Segments: []int{i}})
	}

	rhs, err := regexcompile.Compile(spec.TargetPattern)
	if err != nil {
		return nil, errors.Wrap(err, "dslfile: compile target pattern")
	}
	out.RHS = rhs

	return out, nil
}
