package dslfile

import (
	"github.com/cockroachdb/errors"
)

// VariableConstraint is one `NAME : "regex" ;` declaration.
type VariableConstraint struct {
	Name    string
	Pattern string
}

// EquationSpec is the parsed, not-yet-compiled content of one equation
// file: the per-variable constraints and the concatenation equation
// naming them in order, together with the target language pattern.
type EquationSpec struct {
	Constraints       []VariableConstraint
	EquationVariables []string
	TargetPattern     string
}

// Parse reads one equation file's source text into an EquationSpec.
func Parse(src string) (*EquationSpec, error) {
	file, err := dslParser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(err, "dslfile: parse equation file")
	}

	spec := &EquationSpec{
		EquationVariables: file.Equation.Variables,
		TargetPattern:     file.Equation.Pattern,
	}
	for _, d := range file.Decls {
		spec.Constraints = append(spec.Constraints, VariableConstraint{Name: d.Name, Pattern: d.Pattern})
	}

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *EquationSpec) validate() error {
	declared := map[string]struct{}{}
	for _, c := range s.Constraints {
		if _, dup := declared[c.Name]; dup {
			return errors.Newf("dslfile: variable %q declared more than once", c.Name)
		}
		declared[c.Name] = struct{}{}
	}
	for _, v := range s.EquationVariables {
		if _, ok := declared[v]; !ok {
			return errors.Newf("dslfile: equation references undeclared variable %q", v)
		}
	}
	return nil
}

// ConstraintOf returns the declared pattern for variable name.
func (s *EquationSpec) ConstraintOf(name string) (string, bool) {
	for _, c := range s.Constraints {
		if c.Name == name {
			return c.Pattern, true
		}
	}
	return "", false
}
