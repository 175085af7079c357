package nodes

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// MultiBand sums a LinearSpectrum's per-bin powers into rectangular bands
// delimited by a strictly increasing list of Hz boundaries, then exposes
// each band's magnitude as sqrt(power).
type MultiBand struct {
	graph.Base
	BoundariesHz []float64
}

// NewMultiBand builds a MultiBand node over len(boundaries)-1 bands.
func NewMultiBand(boundariesHz []float64) (*MultiBand, error) {
	for i := 1; i < len(boundariesHz); i++ {
		if boundariesHz[i] <= boundariesHz[i-1] {
			return nil, sgerr.New(sgerr.Configuration, "NewMultiBand", nil)
		}
	}
	return &MultiBand{BoundariesHz: boundariesHz}, nil
}

// GetBin returns the index of the half-open band [boundaries[i],
// boundaries[i+1]) containing f, or -1 if f falls outside every band.
func (n *MultiBand) GetBin(f float64) int {
	for i := 0; i+1 < len(n.BoundariesHz); i++ {
		if f >= n.BoundariesHz[i] && f < n.BoundariesHz[i+1] {
			return i
		}
	}
	return -1
}

func (n *MultiBand) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindLinearSpectrum {
		return sgerr.New(sgerr.Configuration, "MultiBand.Process", errWrongKind(in.Kind, frame.KindLinearSpectrum))
	}
	bands := len(n.BoundariesHz) - 1
	power := make([]float64, bands)
	mag := in.Magnitude()
	for k, m := range mag {
		f := frame.BinFrequencyHz(in.Format.SampleRate, len(mag), k)
		b := n.GetBin(f)
		if b < 0 {
			continue
		}
		power[b] += float64(m) * float64(m)
	}
	out32 := make([]float32, bands)
	for b, p := range power {
		out32[b] = float32(math.Sqrt(p))
	}
	out := frame.NewMultiBandSpectrum(in.Format, in.FrameNumber, n.BoundariesHz, out32)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *MultiBand) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *MultiBand) Equal(other graph.PushNode) bool {
	o, ok := other.(*MultiBand)
	if !ok || len(o.BoundariesHz) != len(n.BoundariesHz) {
		return false
	}
	for i, v := range n.BoundariesHz {
		if o.BoundariesHz[i] != v {
			return false
		}
	}
	return true
}
