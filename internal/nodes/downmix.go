// Package nodes holds the concrete push node implementations driven by
// package pump: mono downmix, channel split/join, windowing and resampling,
// the transform wrappers, and the feature nodes. Every node embeds graph.Base (or graph.SplitBase for fixed
// channel-count splits) and implements Process/Flush/Equal itself.
package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// MonoDownmix averages each interleaved channel group of a RealFrame into
// one mono sample, rewriting the frame's format to one channel: a stereo
// buffer LRLR... of 2k samples becomes k averaged samples.
type MonoDownmix struct {
	graph.Base
	out *audioformat.Format
}

// NewMonoDownmix builds a MonoDownmix node.
func NewMonoDownmix() *MonoDownmix { return &MonoDownmix{} }

func (n *MonoDownmix) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "MonoDownmix.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	ch := in.Format.Channels
	if ch < 1 {
		ch = 1
	}
	mono := make([]float32, 0, len(in.Real)/ch)
	for i := 0; i+ch <= len(in.Real); i += ch {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += in.Real[i+c]
		}
		mono = append(mono, sum/float32(ch))
	}
	if n.out == nil {
		n.out = in.Format.WithChannels(1)
	}
	out := frame.NewReal(n.out, in.FrameNumber, mono)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *MonoDownmix) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *MonoDownmix) Equal(other graph.PushNode) bool {
	_, ok := other.(*MonoDownmix)
	return ok
}
