package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
	"github.com/linuxmatters/sndgraph/internal/transform"
)

// FFTNode forwards-transforms mono real input into a LinearSpectrum.
// N is fixed at construction, deduced from the first input's
// length, or deduced from a required Hz resolution; 0 for both N and
// ResolutionHz means "deduce from the first buffer".
type FFTNode struct {
	graph.Base
	N            int
	ResolutionHz float64

	resolved bool
	out      *audioformat.Format
}

// NewFFT builds an FFTNode of fixed length n (0 to deduce from the first
// input buffer).
func NewFFT(n int) *FFTNode { return &FFTNode{N: n} }

// NewFFTFromResolution builds an FFTNode whose length is deduced from the
// required frequency resolution once the first input's sample rate is
// known.
func NewFFTFromResolution(resolutionHz float64) *FFTNode { return &FFTNode{ResolutionHz: resolutionHz} }

func (n *FFTNode) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "FFTNode.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if in.Format.Channels != 1 {
		return sgerr.New(sgerr.Configuration, "FFTNode.Process", errChannelCount(in.Format.Channels, 1))
	}
	if !n.resolved {
		if n.N == 0 {
			if n.ResolutionHz > 0 {
				n.N = transform.LengthForResolution(in.Format.SampleRate, n.ResolutionHz)
			} else {
				n.N = len(in.Real)
			}
		}
		n.out = in.Format
		n.resolved = true
	}
	re, im, err := transform.FFT(toFloat64(in.Real), n.N)
	if err != nil {
		return err
	}
	out := frame.NewLinearSpectrum(n.out, in.FrameNumber, toFloat32(re), toFloat32(im))
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *FFTNode) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *FFTNode) Equal(other graph.PushNode) bool {
	o, ok := other.(*FFTNode)
	return ok && o.N == n.N && o.ResolutionHz == n.ResolutionHz
}

// IFFTNode inverse-transforms a complex or linear-spectrum frame back to a
// time-domain ComplexFrame.
type IFFTNode struct {
	graph.Base
	out *audioformat.Format
}

// NewIFFT builds an IFFTNode.
func NewIFFT() *IFFTNode { return &IFFTNode{} }

func (n *IFFTNode) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindComplex && in.Kind != frame.KindLinearSpectrum {
		return sgerr.New(sgerr.Configuration, "IFFTNode.Process", errWrongKind(in.Kind, frame.KindLinearSpectrum))
	}
	if len(in.Real) != len(in.Imag) {
		return sgerr.New(sgerr.Invariant, "IFFTNode.Process", errLength(len(in.Imag), len(in.Real)))
	}
	if n.out == nil {
		n.out = in.Format
	}
	re, im, err := transform.IFFT(toFloat64(in.Real), toFloat64(in.Imag))
	if err != nil {
		return err
	}
	out := frame.NewComplex(n.out, in.FrameNumber, toFloat32(re), toFloat32(im))
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *IFFTNode) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *IFFTNode) Equal(other graph.PushNode) bool {
	_, ok := other.(*IFFTNode)
	return ok
}

// DCTNode computes the DCT-II of mono real input via a 2N-point FFT;
// N deduction mirrors FFTNode.
type DCTNode struct {
	graph.Base
	N int

	resolved bool
	out      *audioformat.Format
}

// NewDCT builds a DCTNode of fixed length n (0 to deduce from the first
// input buffer).
func NewDCT(n int) *DCTNode { return &DCTNode{N: n} }

func (n *DCTNode) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "DCTNode.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if in.Format.Channels != 1 {
		return sgerr.New(sgerr.Configuration, "DCTNode.Process", errChannelCount(in.Format.Channels, 1))
	}
	if !n.resolved {
		if n.N == 0 {
			n.N = len(in.Real)
		}
		n.out = in.Format
		n.resolved = true
	}
	coeffs, err := transform.DCTII(toFloat64(in.Real), n.N)
	if err != nil {
		return err
	}
	out := frame.NewReal(n.out, in.FrameNumber, toFloat32(coeffs))
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *DCTNode) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *DCTNode) Equal(other graph.PushNode) bool {
	o, ok := other.(*DCTNode)
	return ok && o.N == n.N
}
