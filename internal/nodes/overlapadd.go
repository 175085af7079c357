package nodes

import (
	"fmt"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// OverlapAdd is the inverse of SlidingWindow: incoming length-L frames are
// added into a pair of length-L accumulators at an advancing offset o; once
// o reaches L the filled accumulator is emitted and the pair rotates.
// Flush emits both residual accumulators, filled or not.
type OverlapAdd struct {
	graph.Base
	L, H int

	accA, accB []float32
	o          int
	windowIdx  int64
	firstFN    int64
	haveFirst  bool
	out        *audioformat.Format
}

// NewOverlapAdd builds an OverlapAdd of window length l and hop h.
func NewOverlapAdd(l, h int) (*OverlapAdd, error) {
	if h <= 0 || h > l {
		return nil, sgerr.New(sgerr.Configuration, "NewOverlapAdd", fmt.Errorf("hop %d out of range for length %d", h, l))
	}
	return &OverlapAdd{L: l, H: h, accA: make([]float32, l), accB: make([]float32, l)}, nil
}

func (n *OverlapAdd) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "OverlapAdd.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if len(in.Real) != n.L {
		return sgerr.New(sgerr.Configuration, "OverlapAdd.Process", errLength(len(in.Real), n.L))
	}
	if n.out == nil {
		n.out = in.Format
	}
	if !n.haveFirst {
		n.firstFN = in.FrameNumber
		n.haveFirst = true
	}
	for i, v := range in.Real {
		pos := n.o + i
		if pos < n.L {
			n.accA[pos] += v
		} else {
			n.accB[pos-n.L] += v
		}
	}
	n.o += n.H
	if n.o < n.L {
		return nil
	}
	return n.rotate()
}

func (n *OverlapAdd) rotate() error {
	out := frame.NewReal(n.out, n.firstFN+n.windowIdx*int64(n.H), n.accA)
	n.SetOutput(out)
	n.windowIdx++
	n.accA, n.accB = n.accB, make([]float32, n.L)
	n.o -= n.L
	return forward(n.ChildList(), out)
}

func (n *OverlapAdd) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	for _, acc := range [][]float32{n.accA, n.accB} {
		out := frame.NewReal(n.out, n.firstFN+n.windowIdx*int64(n.H), acc)
		n.SetOutput(out)
		n.windowIdx++
		if err := forward(n.ChildList(), out); err != nil {
			return err
		}
	}
	return flushChildren(n.ChildList())
}

func (n *OverlapAdd) Equal(other graph.PushNode) bool {
	o, ok := other.(*OverlapAdd)
	return ok && o.L == n.L && o.H == n.H
}
