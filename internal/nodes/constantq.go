package nodes

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
	"github.com/linuxmatters/sndgraph/internal/transform"
)

// ConstantQ transforms mono time-domain input through a Brown-Puckette
// sparse spectral kernel, built once from FMin/FMax/BinsPerOctave/Threshold
// at the first frame, and emits a LogSpectrum.
type ConstantQ struct {
	graph.Base
	FMin, FMax    float64
	BinsPerOctave int
	Threshold     float64

	kernel *transform.ConstantQKernel
}

// NewConstantQ builds a ConstantQ node for the given parameters; the
// kernel itself is built lazily once the sample rate is known.
func NewConstantQ(fmin, fmax float64, binsPerOctave int, threshold float64) *ConstantQ {
	return &ConstantQ{FMin: fmin, FMax: fmax, BinsPerOctave: binsPerOctave, Threshold: threshold}
}

func (n *ConstantQ) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "ConstantQ.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if in.Format.Channels != 1 {
		return sgerr.New(sgerr.Configuration, "ConstantQ.Process", errChannelCount(in.Format.Channels, 1))
	}
	if n.kernel == nil {
		k, err := transform.NewConstantQKernel(n.FMin, n.FMax, n.BinsPerOctave, in.Format.SampleRate, n.Threshold)
		if err != nil {
			return err
		}
		n.kernel = k
	}
	re, im, err := n.kernel.Transform(toFloat64(in.Real))
	if err != nil {
		return err
	}
	q := 1 / (math.Pow(2, 1/float64(n.BinsPerOctave)) - 1)
	out := frame.NewLogSpectrum(in.Format, in.FrameNumber, toFloat32(re), toFloat32(im), n.kernel.CenterFreqsHz, q, 0)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *ConstantQ) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *ConstantQ) Equal(other graph.PushNode) bool {
	o, ok := other.(*ConstantQ)
	return ok && o.FMin == n.FMin && o.FMax == n.FMax && o.BinsPerOctave == n.BinsPerOctave && o.Threshold == n.Threshold
}
