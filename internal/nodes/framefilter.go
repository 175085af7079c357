package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
)

// FrameNumberFilter forwards only frames whose frame number satisfies
// Predicate, e.g. subsampling every Nth frame. Name identifies the
// predicate for structural equality.
type FrameNumberFilter struct {
	graph.Base
	Name      string
	Predicate func(frameNumber int64) bool
}

// NewFrameNumberFilter builds a FrameNumberFilter node.
func NewFrameNumberFilter(name string, predicate func(int64) bool) *FrameNumberFilter {
	return &FrameNumberFilter{Name: name, Predicate: predicate}
}

func (n *FrameNumberFilter) Process(in *frame.Frame) error {
	n.MarkRunning()
	if !n.Predicate(in.FrameNumber) {
		return nil
	}
	n.SetOutput(in)
	return forward(n.ChildList(), in)
}

func (n *FrameNumberFilter) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *FrameNumberFilter) Equal(other graph.PushNode) bool {
	o, ok := other.(*FrameNumberFilter)
	return ok && o.Name == n.Name
}
