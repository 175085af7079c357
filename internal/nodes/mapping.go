package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
)

// Mapping applies Fn elementwise to a frame's real array (and imaginary,
// for complex-kind frames), forwarding an otherwise-identical frame. Name
// identifies the mapping for structural equality.
type Mapping struct {
	graph.Base
	Name string
	Fn   func(float32) float32
}

// NewMapping builds a Mapping node applying fn to every real (and
// imaginary) sample.
func NewMapping(name string, fn func(float32) float32) *Mapping {
	return &Mapping{Name: name, Fn: fn}
}

func (n *Mapping) Process(in *frame.Frame) error {
	n.MarkRunning()
	out := in.Clone()
	for i, v := range out.Real {
		out.Real[i] = n.Fn(v)
	}
	for i, v := range out.Imag {
		out.Imag[i] = n.Fn(v)
	}
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Mapping) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Mapping) Equal(other graph.PushNode) bool {
	o, ok := other.(*Mapping)
	return ok && o.Name == n.Name
}
