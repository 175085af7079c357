package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// Mel bins a LinearSpectrum through a triangular mel filter bank built
// once, on the first frame, from Lower/Upper Hz bounds and Channels
// triangles. FilterPowers selects summing powers rather than
// magnitudes; Normalize scales each row so it sums to 1.
type Mel struct {
	graph.Base
	Lower, Upper float64
	Channels     int
	FilterPowers bool
	Normalize    bool

	built       bool
	bank        [][]float32 // bank[b][k]
	boundaries  []float64   // Channels+2 Hz edges, for the output frame
}

// NewMel builds a Mel node with Channels triangular filters spanning
// [lower, upper] Hz.
func NewMel(lower, upper float64, channels int, filterPowers bool) (*Mel, error) {
	if channels < 1 || upper <= lower {
		return nil, sgerr.New(sgerr.Configuration, "NewMel", nil)
	}
	return &Mel{Lower: lower, Upper: upper, Channels: channels, FilterPowers: filterPowers}, nil
}

func (n *Mel) build(sampleRate, numBins int) {
	melLo, melHi := numeric.HzToMel(n.Lower), numeric.HzToMel(n.Upper)
	edges := make([]float64, n.Channels+2)
	for i := range edges {
		mel := melLo + (melHi-melLo)*float64(i)/float64(n.Channels+1)
		edges[i] = numeric.MelToHz(mel)
	}
	n.boundaries = edges

	binFreq := make([]float64, numBins)
	for k := range binFreq {
		binFreq[k] = frame.BinFrequencyHz(sampleRate, numBins, k)
	}

	n.bank = make([][]float32, n.Channels)
	for b := 0; b < n.Channels; b++ {
		lo, center, hi := edges[b], edges[b+1], edges[b+2]
		row := make([]float32, numBins)
		var sum float32
		for k, f := range binFreq {
			var w float64
			switch {
			case f <= lo || f >= hi:
				w = 0
			case f <= center:
				w = (f - lo) / (center - lo)
			default:
				w = (hi - f) / (hi - center)
			}
			row[k] = float32(w)
			sum += row[k]
		}
		if n.Normalize && sum > 0 {
			for k := range row {
				row[k] /= sum
			}
		}
		n.bank[b] = row
	}
	n.built = true
}

func (n *Mel) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindLinearSpectrum {
		return sgerr.New(sgerr.Configuration, "Mel.Process", errWrongKind(in.Kind, frame.KindLinearSpectrum))
	}
	if !n.built {
		n.build(in.Format.SampleRate, len(in.Real))
	}
	var v []float32
	if n.FilterPowers {
		v = in.Power()
	} else {
		v = in.Magnitude()
	}
	values := make([]float32, n.Channels)
	for b, row := range n.bank {
		var y float32
		for k, w := range row {
			if k >= len(v) {
				break
			}
			y += w * v[k]
		}
		values[b] = y
	}
	out := frame.NewMelSpectrum(in.Format, in.FrameNumber, n.boundaries, values, n.FilterPowers)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Mel) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Mel) Equal(other graph.PushNode) bool {
	o, ok := other.(*Mel)
	return ok && o.Lower == n.Lower && o.Upper == n.Upper && o.Channels == n.Channels &&
		o.FilterPowers == n.FilterPowers && o.Normalize == n.Normalize
}
