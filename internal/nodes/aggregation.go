package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
)

// Aggregation folds every incoming frame into a running accumulator and
// emits the (optionally finalized) result once on Flush — the shape used
// for stream-wide scalars like an overall zero-crossing rate. Name identifies the fold for structural equality, since func values
// aren't comparable.
type Aggregation struct {
	graph.Base
	Name     string
	Fold     func(acc float64, in *frame.Frame) float64
	Finalize func(acc float64, count int) float64

	acc     float64
	count   int
	format  *audioformat.Format
	fn      int64
	started bool
}

// NewAggregation builds an Aggregation node. finalize may be nil, in which
// case the raw accumulator is emitted as-is.
func NewAggregation(name string, initial float64, fold func(float64, *frame.Frame) float64, finalize func(float64, int) float64) *Aggregation {
	return &Aggregation{Name: name, Fold: fold, Finalize: finalize, acc: initial}
}

func (n *Aggregation) Process(in *frame.Frame) error {
	n.MarkRunning()
	if !n.started {
		n.format = in.Format
		n.fn = in.FrameNumber
		n.started = true
	}
	n.acc = n.Fold(n.acc, in)
	n.count++
	return nil
}

func (n *Aggregation) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	result := n.acc
	if n.Finalize != nil {
		result = n.Finalize(n.acc, n.count)
	}
	out := frame.NewReal(n.format, n.fn, []float32{float32(result)})
	n.SetOutput(out)
	if err := forward(n.ChildList(), out); err != nil {
		return err
	}
	return flushChildren(n.ChildList())
}

func (n *Aggregation) Equal(other graph.PushNode) bool {
	o, ok := other.(*Aggregation)
	return ok && o.Name == n.Name
}
