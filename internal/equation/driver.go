// Package equation implements the EquationDriver of spec §4.5: it builds
// the seamed product automaton from a left-hand sequence of per-variable
// automata and a right-hand target language, applies the requested
// reduction, and dispatches to segmentation, the segment registry, noodle
// enumeration, and AFA emission. Grounded on the reference library's
// top-level regexp-matching pipeline shape (LAB_2/regexlib/regexp.go:
// Compile -> NFA -> match), generalized from "compile one pattern" to
// "build and noodlify one equation".
package equation

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"noodler/internal/afa"
	"noodler/internal/automaton"
	"noodler/internal/noodle"
	"noodler/internal/registry"
	"noodler/internal/segmentation"
)

// Driver runs the equation pipeline. Logger may be nil, in which case a
// no-op logger is used — tests construct Drivers without wiring zap.
type Driver struct {
	Logger *zap.Logger
}

func (d Driver) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Result is the outcome of one equation call: the enumerated noodles, and
// whether an AFA was actually streamed to the sink (per P2, it is not,
// when the product language is empty).
type Result struct {
	Noodles noodle.Sequence
	Emitted bool
}

// NoodlifyForEquationOwned runs the pipeline treating lhs as borrowed for
// in-place use: unify_initial/unify_final is applied to the LHS automata
// only when a reduction is actually requested.
func (d Driver) NoodlifyForEquationOwned(ctx context.Context, lhs []*automaton.NFA, rhs *automaton.NFA, variables []afa.Variable, includeEmpty bool, cfg Config, sink io.Writer) (Result, error) {
	return d.run(ctx, lhs, rhs, variables, includeEmpty, cfg, sink, cfg.NormalizedReduce() != "")
}

// NoodlifyForEquationShared runs the pipeline treating lhs as shared
// handles: unify_initial/unify_final is applied unconditionally, per the
// documented (and deliberately unharmonized) overload divergence.
func (d Driver) NoodlifyForEquationShared(ctx context.Context, lhs []*automaton.NFA, rhs *automaton.NFA, variables []afa.Variable, includeEmpty bool, cfg Config, sink io.Writer) (Result, error) {
	return d.run(ctx, lhs, rhs, variables, includeEmpty, cfg, sink, true)
}

// BuildProduct runs the pipeline's prepare/alphabet/concatenate/intersect/
// trim/reduce steps only, stopping short of segmentation and noodle
// enumeration. It is the shared core NoodlifyFor* and the CLI's inspect
// subcommand both build on: inspect needs the exact automaton solve would
// segment, without actually noodlifying it (spec §4.5's driver pipeline
// factored at its natural midpoint).
//
// ok is false when either input short-circuits the pipeline (empty LHS
// slice or a RHS that accepts no word); product and alphabet are nil in
// that case.
func (d Driver) BuildProduct(lhs []*automaton.NFA, rhs *automaton.NFA, cfg Config, unifyAlways bool) (product *automaton.NFA, eps automaton.Symbol, alphabet *automaton.Alphabet, ok bool) {
	log := d.logger()

	if len(lhs) == 0 {
		log.Debug("empty LHS, short-circuiting")
		return nil, 0, nil, false
	}
	if automaton.IsLangEmpty(rhs) {
		log.Debug("RHS accepts no word, short-circuiting")
		return nil, 0, nil, false
	}

	prepared := make([]*automaton.NFA, len(lhs))
	for i, a := range lhs {
		if unifyAlways {
			prepared[i] = automaton.UnifyFinal(automaton.UnifyInitial(a))
		} else {
			prepared[i] = a
		}
	}

	alphabet = automaton.NewAlphabet()
	for _, a := range prepared {
		alphabet.AddSymbolsFrom(a)
	}
	alphabet.AddSymbolsFrom(rhs)
	eps = alphabet.NextValue()

	left := prepared[0]
	for i := 1; i < len(prepared); i++ {
		left = automaton.Concatenate(left, prepared[i], eps)
	}

	product = automaton.Intersection(left, rhs, eps)
	product = automaton.Trim(product)

	if cfg.Reduce != "" && cfg.NormalizedReduce() == "" {
		log.Debug("unrecognized reduce value, ignoring", zap.String("reduce", cfg.Reduce))
	}

	switch cfg.NormalizedReduce() {
	case "forward":
		product = automaton.Reduce(product)
	case "backward":
		product = automaton.Invert(automaton.Reduce(automaton.Invert(product)))
	case "bidirectional":
		product = automaton.Reduce(product)
		product = automaton.Invert(automaton.Reduce(automaton.Invert(product)))
	}

	return product, eps, alphabet, true
}

func (d Driver) run(ctx context.Context, lhs []*automaton.NFA, rhs *automaton.NFA, variables []afa.Variable, includeEmpty bool, cfg Config, sink io.Writer, unifyAlways bool) (Result, error) {
	log := d.logger()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	product, eps, alphabet, ok := d.BuildProduct(lhs, rhs, cfg, unifyAlways)
	if !ok {
		return Result{}, nil
	}
	if automaton.IsLangEmpty(product) {
		log.Debug("product language is empty, no AFA emission")
		return Result{}, nil
	}

	seg, err := segmentation.New(product, eps)
	if err != nil {
		log.Error("segmentation failed", zap.Error(err))
		return Result{}, err
	}

	reg := registry.Build(seg, includeEmpty, product.NumStates())
	noodles := noodle.Enumerate(seg, reg, includeEmpty)
	log.Debug("enumerated noodles", zap.Int("count", len(noodles)))

	if cfg.AFAType != "" && cfg.AFAType != "bits" && cfg.AFAType != "tracks" {
		log.Debug("unrecognized afa-type value, defaulting to bits", zap.String("afa-type", cfg.AFAType))
	}

	emitted := false
	if sink != nil {
		emitter := afa.Emitter{UseBits: cfg.useBits()}
		if err := emitter.Emit(sink, product, eps, seg, variables, alphabet); err != nil {
			log.Error("AFA sink write failed", zap.Error(err))
			return Result{Noodles: noodles}, errors.Wrap(err, "equation: AFA sink")
		}
		emitted = true
	}

	return Result{Noodles: noodles, Emitted: emitted}, nil
}
