package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
)

// collector is a leaf test node that clones every frame it receives, so
// assertions survive upstream frame reuse.
type collector struct {
	graph.Base
	frames []*frame.Frame
}

func (c *collector) Process(in *frame.Frame) error {
	c.MarkRunning()
	c.frames = append(c.frames, in.Clone())
	return nil
}

func (c *collector) Flush() error {
	if c.AlreadyFlushed() {
		return nil
	}
	c.MarkFlushed()
	return nil
}

func (c *collector) Equal(graph.PushNode) bool { return false }

// concat joins the real parts of every collected frame in arrival order.
func (c *collector) concat() []float32 {
	var out []float32
	for _, f := range c.frames {
		out = append(out, f.Real...)
	}
	return out
}

func monoFormat(sr int) *audioformat.Format {
	return &audioformat.Format{
		SampleRate: sr,
		SampleBits: 16,
		Channels:   1,
		Encoding:   audioformat.PCMSigned,
		Endian:     audioformat.LittleEndian,
	}
}

func stereoFormat(sr int) *audioformat.Format {
	return monoFormat(sr).WithChannels(2)
}
