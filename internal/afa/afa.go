// Package afa streams a product automaton, together with its
// segmentation, as a one-pass textual Alternating Finite Automaton
// description: a Boolean combination over per-variable track atoms that
// encodes segment order and non-overlap, with a bit-level or track-level
// symbol encoding. Grounded on the reference library's streaming text
// exporter (LAB_2/regexlib/dot.go: ExportDOT), generalized from a fixed
// node/edge-per-line DOT grammar to the AFA formula grammar.
package afa

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"noodler/internal/automaton"
	"noodler/internal/segmentation"
)

// Variable names a free string variable and the ordered list of segment
// indices it occupies in the product automaton, i.e. variableLocations[v]
// from spec §4.5.
type Variable struct {
	Name     string
	Segments []int
}

// Emitter streams one AFA text description per call to Emit. It carries
// no state across calls; the symbol remap table is local to one emission
// so property P7 (stable remap within one emission) holds without needing
// external bookkeeping.
type Emitter struct {
	UseBits bool
}

// Emit writes the AFA text for product (segmented by seg, seamed by eps,
// owned per-segment by variables) to w. The only possible failure is a
// write error on w, wrapped as SinkIOError per spec §7.
func (e Emitter) Emit(w io.Writer, product *automaton.NFA, eps automaton.Symbol, seg *segmentation.Segmentation, variables []Variable, alphabet *automaton.Alphabet) error {
	bw := bufio.NewWriter(w)
	em := &emission{
		w:       bw,
		product: product,
		eps:     eps,
		seg:     seg,
		useBits: e.UseBits,
		bits:    neededBits(alphabet.Len()),
		segToVar: segmentOwners(variables, len(seg.Segments())),
	}

	if err := em.header(); err != nil {
		return err
	}
	if err := em.initial(); err != nil {
		return err
	}
	if err := em.final(); err != nil {
		return err
	}
	if err := em.transitions(); err != nil {
		return err
	}
	if err := em.selfLoopStubs(); err != nil {
		return err
	}
	if err := writeLine(bw, "#AFA was fully printed"); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return wrapSink(err)
	}
	return nil
}

type emission struct {
	w        *bufio.Writer
	product  *automaton.NFA
	eps      automaton.Symbol
	seg      *segmentation.Segmentation
	useBits  bool
	bits     int
	segToVar map[int]int
	symtab   symbolTable
}

func wrapSink(err error) error {
	return errors.Wrap(err, "afa: sink I/O error")
}

func writeLine(w *bufio.Writer, s string) error {
	if _, err := w.WriteString(s); err != nil {
		return wrapSink(err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return wrapSink(err)
	}
	return nil
}

func (e *emission) header() error {
	if e.useBits {
		return writeLine(e.w, "@AFA-bits")
	}
	if err := writeLine(e.w, "@AFA-explicit"); err != nil {
		return err
	}
	if err := writeLine(e.w, "%Alphabet-numbers"); err != nil {
		return err
	}
	return writeLine(e.w, "%Tracks-auto")
}

// neededBits returns ceil(log2(max(1, n))), clamped to at least 1, per
// spec §4.4's single-alphabet-symbol open question.
func neededBits(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

func segmentOwners(variables []Variable, numSegments int) map[int]int {
	owners := make(map[int]int, numSegments)
	for vi, v := range variables {
		for _, segLoc := range v.Segments {
			owners[segLoc] = vi
		}
	}
	return owners
}

// crossSegmentInitials returns the ambient states that are segments[s]'s
// initial set for every s >= 1 — the "cross-segment initials" spec §4.4
// refers to, in ascending order, deduplicated.
func crossSegmentInitials(seg *segmentation.Segmentation) []automaton.State {
	set := map[automaton.State]struct{}{}
	segs := seg.Segments()
	for i := 1; i < len(segs); i++ {
		for _, s := range segs[i].Initial {
			set[s] = struct{}{}
		}
	}
	out := make([]automaton.State, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func atom(s automaton.State) string { return fmt.Sprintf("q%d", s) }

func primedAtom(s automaton.State) string { return fmt.Sprintf("q%d'", s) }

func negate(literal string) string { return "!" + literal }

func disjunction(parts []string) string {
	if len(parts) == 0 {
		return "false"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func conjunction(parts []string) string {
	if len(parts) == 0 {
		return "true"
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " & ") + ")"
}
