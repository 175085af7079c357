package nodes

import (
	"fmt"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// SlidingWindow accumulates incoming real samples into an internal buffer
// of length L and emits overlapping windows with hop H ≤ L. On
// flush, any partial window is zero-padded and emitted.
type SlidingWindow struct {
	graph.Base
	L, H int

	buf        []float32
	fill       int
	windowIdx  int64
	firstFN    int64
	haveFirst  bool
	out        *audioformat.Format
}

// NewSlidingWindow builds a SlidingWindow of length l and hop h.
func NewSlidingWindow(l, h int) (*SlidingWindow, error) {
	if h <= 0 || h > l {
		return nil, sgerr.New(sgerr.Configuration, "NewSlidingWindow", fmt.Errorf("hop %d out of range for length %d", h, l))
	}
	return &SlidingWindow{L: l, H: h, buf: make([]float32, l)}, nil
}

func (n *SlidingWindow) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "SlidingWindow.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.out == nil {
		n.out = in.Format
	}
	if !n.haveFirst {
		n.firstFN = in.FrameNumber
		n.haveFirst = true
	}
	for _, s := range in.Real {
		n.buf[n.fill] = s
		n.fill++
		if n.fill == n.L {
			if err := n.emit(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *SlidingWindow) emit() error {
	out := frame.NewReal(n.out, n.firstFN+n.windowIdx*int64(n.H), append([]float32(nil), n.buf...))
	n.SetOutput(out)
	n.windowIdx++
	copy(n.buf, n.buf[n.H:n.L])
	n.fill = n.L - n.H
	return forward(n.ChildList(), out)
}

func (n *SlidingWindow) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	if n.fill > 0 {
		for i := n.fill; i < n.L; i++ {
			n.buf[i] = 0
		}
		if err := n.emit(); err != nil {
			return err
		}
	}
	return flushChildren(n.ChildList())
}

func (n *SlidingWindow) Equal(other graph.PushNode) bool {
	o, ok := other.(*SlidingWindow)
	return ok && o.L == n.L && o.H == n.H
}
