package segmentation

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"noodler/internal/automaton"
)

// MalformedSegmentationError reports an ε-edge that crosses more than one
// depth layer, or that closes a cycle back onto an already-committed
// layer. Segmentation is otherwise total; this is its one failure mode.
type MalformedSegmentationError struct {
	Src, Tgt  automaton.State
	SrcDepth  int
	WantDepth int
	GotDepth  int
}

func (e *MalformedSegmentationError) Error() string {
	return fmt.Sprintf(
		"segmentation: ε-edge (%d -> %d) out of segment %d expects target depth %d, found %d",
		e.Src, e.Tgt, e.SrcDepth, e.WantDepth, e.GotDepth,
	)
}

func newMalformed(src, tgt automaton.State, srcDepth, want, got int) error {
	return errors.WithStack(&MalformedSegmentationError{
		Src: src, Tgt: tgt, SrcDepth: srcDepth, WantDepth: want, GotDepth: got,
	})
}
