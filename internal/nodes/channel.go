package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// ChannelSelect keeps a single channel out of an interleaved multichannel
// RealFrame, rewriting the format to one channel.
type ChannelSelect struct {
	graph.Base
	Channel int
	out     *audioformat.Format
}

// NewChannelSelect builds a ChannelSelect node for the given zero-based
// channel index.
func NewChannelSelect(channel int) *ChannelSelect { return &ChannelSelect{Channel: channel} }

func (n *ChannelSelect) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "ChannelSelect.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.Channel >= in.Format.Channels {
		return sgerr.New(sgerr.Configuration, "ChannelSelect.Process", errChannelCount(in.Format.Channels, n.Channel+1))
	}
	if n.out == nil {
		n.out = in.Format.WithChannels(1)
	}
	ch := in.Format.Channels
	kept := make([]float32, 0, len(in.Real)/ch)
	for i := n.Channel; i < len(in.Real); i += ch {
		kept = append(kept, in.Real[i])
	}
	out := frame.NewReal(n.out, in.FrameNumber, kept)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *ChannelSelect) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *ChannelSelect) Equal(other graph.PushNode) bool {
	o, ok := other.(*ChannelSelect)
	return ok && o.Channel == n.Channel
}

// InterleavedChannelSplit de-interleaves an LRLR… RealFrame into C
// per-channel RealFrames, each forwarded to the matching channel's
// children. Splits are never merged by the pump.
type InterleavedChannelSplit struct {
	*graph.SplitBase
	out []*audioformat.Format
}

// NewInterleavedChannelSplit builds a split with the given fixed channel
// count.
func NewInterleavedChannelSplit(channels int) *InterleavedChannelSplit {
	return &InterleavedChannelSplit{SplitBase: graph.NewSplitBase(channels), out: make([]*audioformat.Format, channels)}
}

func (n *InterleavedChannelSplit) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "InterleavedChannelSplit.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if in.Format.Channels != n.ChannelCount() {
		return sgerr.New(sgerr.Configuration, "InterleavedChannelSplit.Process", errChannelCount(in.Format.Channels, n.ChannelCount()))
	}
	c := n.ChannelCount()
	for ch := 0; ch < c; ch++ {
		if n.out[ch] == nil {
			n.out[ch] = in.Format.WithChannels(1)
		}
		samples := make([]float32, 0, len(in.Real)/c)
		for i := ch; i < len(in.Real); i += c {
			samples = append(samples, in.Real[i])
		}
		out := frame.NewReal(n.out[ch], in.FrameNumber, samples)
		if err := forward(n.Children()[ch], out); err != nil {
			return err
		}
	}
	return nil
}

func (n *InterleavedChannelSplit) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	for _, channelChildren := range n.Children() {
		if err := flushChildren(channelChildren); err != nil {
			return err
		}
	}
	return nil
}

func (n *InterleavedChannelSplit) Equal(graph.PushNode) bool { return false }

// Join buffers one frame from each of N registered upstream paths and calls
// Aggregate once all N have arrived in the current round, then resets for
// the next round. Flush discards an unbalanced final round without
// aggregating it, then flushes the children.
type Join struct {
	graph.Base
	N         int
	Aggregate func(inputs []*frame.Frame) (*frame.Frame, error)
	pending   []*frame.Frame
}

// NewJoin builds a Join buffering n inputs and reducing them with aggregate.
func NewJoin(n int, aggregate func([]*frame.Frame) (*frame.Frame, error)) *Join {
	return &Join{N: n, Aggregate: aggregate}
}

func (n *Join) Process(in *frame.Frame) error {
	n.MarkRunning()
	n.pending = append(n.pending, in)
	if len(n.pending) < n.N {
		return nil
	}
	out, err := n.Aggregate(n.pending)
	n.pending = nil
	if err != nil {
		return err
	}
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Join) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	n.pending = nil
	return flushChildren(n.ChildList())
}

func (n *Join) Equal(other graph.PushNode) bool {
	o, ok := other.(*Join)
	return ok && o.N == n.N
}
