package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// ZeroPad extends a real frame's tail with zeros up to Length, or passes
// it through unchanged if it's already at least that long.
type ZeroPad struct {
	graph.Base
	Length int
}

// NewZeroPad builds a ZeroPad node padding real frames to length.
func NewZeroPad(length int) *ZeroPad { return &ZeroPad{Length: length} }

func (n *ZeroPad) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "ZeroPad.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if len(in.Real) >= n.Length {
		n.SetOutput(in)
		return forward(n.ChildList(), in)
	}
	padded := make([]float32, n.Length)
	copy(padded, in.Real)
	out := frame.NewReal(in.Format, in.FrameNumber, padded)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *ZeroPad) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *ZeroPad) Equal(other graph.PushNode) bool {
	o, ok := other.(*ZeroPad)
	return ok && o.Length == n.Length
}
