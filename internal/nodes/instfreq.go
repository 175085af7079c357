package nodes

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// InstantaneousFrequency derives a per-bin instantaneous frequency from
// two successive LinearSpectrum frames separated by HopFrames samples:
// expected phase advance is subtracted from the observed advance,
// the remainder is wrapped into [-pi, pi], and the result is converted
// back to Hz. Output magnitudes are the elementwise average of the two
// input magnitudes.
type InstantaneousFrequency struct {
	graph.Base
	HopFrames int

	prev *frame.Frame
}

// NewInstantaneousFrequency builds an InstantaneousFrequency node for the
// given hop, in frames, between successive input spectra.
func NewInstantaneousFrequency(hopFrames int) *InstantaneousFrequency {
	return &InstantaneousFrequency{HopFrames: hopFrames}
}

func (n *InstantaneousFrequency) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindLinearSpectrum {
		return sgerr.New(sgerr.Configuration, "InstantaneousFrequency.Process", errWrongKind(in.Kind, frame.KindLinearSpectrum))
	}
	if n.prev == nil {
		n.prev = in.Clone()
		return nil
	}

	bins := len(in.Real)
	sr := float64(in.Format.SampleRate)
	h := float64(n.HopFrames)
	freqs := make([]float32, bins)
	mags := make([]float32, bins)

	prevMag := n.prev.Magnitude()
	currMag := in.Magnitude()
	for k := 0; k < bins; k++ {
		omega := 2 * math.Pi * float64(k) / float64(bins)
		expected := omega * h
		actual := math.Atan2(float64(in.Imag[k]), float64(in.Real[k])) - math.Atan2(float64(n.prev.Imag[k]), float64(n.prev.Real[k]))
		delta := wrapPi(actual - expected)
		instOmega := delta/h + omega
		freqs[k] = float32(instOmega * sr / (2 * math.Pi))
		mags[k] = (prevMag[k] + currMag[k]) / 2
	}

	out := frame.NewInstantaneousFrequencySpectrum(in.Format, in.FrameNumber, freqs, mags, n.HopFrames)
	n.prev = in.Clone()
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func wrapPi(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

func (n *InstantaneousFrequency) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *InstantaneousFrequency) Equal(other graph.PushNode) bool {
	o, ok := other.(*InstantaneousFrequency)
	return ok && o.HopFrames == n.HopFrames
}
