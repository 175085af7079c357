package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// BandSplit accumulates W successive spectra and, once filled, emits to
// each spectral bin's children a real-time frame of length W built from
// that bin's magnitude across the W accumulated spectra (band-major slicing). Bins is the fixed number of input bins, known at graph build
// time from the upstream transform's configuration.
type BandSplit struct {
	*graph.SplitBase
	W    int
	Bins int

	buf       [][]float32 // buf[bin][t], t in [0, fill)
	fill      int
	startFN   int64
	out       *audioformat.Format
}

// NewBandSplit builds a BandSplit over Bins spectral bins, accumulating W
// successive spectra before emitting.
func NewBandSplit(bins, w int) *BandSplit {
	buf := make([][]float32, bins)
	for i := range buf {
		buf[i] = make([]float32, w)
	}
	return &BandSplit{SplitBase: graph.NewSplitBase(bins), W: w, Bins: bins, buf: buf}
}

func (n *BandSplit) Process(in *frame.Frame) error {
	n.MarkRunning()
	mag := in.Magnitude()
	if len(mag) != n.Bins {
		return sgerr.New(sgerr.Configuration, "BandSplit.Process", errLength(len(mag), n.Bins))
	}
	if n.out == nil {
		n.out = in.Format
	}
	if n.fill == 0 {
		n.startFN = in.FrameNumber
	}
	for b := 0; b < n.Bins; b++ {
		n.buf[b][n.fill] = mag[b]
	}
	n.fill++
	if n.fill < n.W {
		return nil
	}
	return n.emit(in.Format)
}

func (n *BandSplit) emit(format *audioformat.Format) error {
	if n.out == nil {
		n.out = format
	}
	for b := 0; b < n.Bins; b++ {
		out := frame.NewReal(n.out, n.startFN, append([]float32(nil), n.buf[b]...))
		if err := forward(n.Children()[b], out); err != nil {
			return err
		}
	}
	n.fill = 0
	return nil
}

func (n *BandSplit) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	if n.fill > 0 {
		for b := 0; b < n.Bins; b++ {
			for t := n.fill; t < n.W; t++ {
				n.buf[b][t] = 0
			}
		}
		if err := n.emit(n.out); err != nil {
			return err
		}
	}
	for _, channelChildren := range n.Children() {
		if err := flushChildren(channelChildren); err != nil {
			return err
		}
	}
	return nil
}

func (n *BandSplit) Equal(graph.PushNode) bool { return false }
