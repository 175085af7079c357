package nodes

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// OnsetStrength accumulates one onset-curve sample per incoming
// LinearSpectrum: for each in-band bin whose power rose by more than
// IncreaseFactor since the previous frame, it adds the log-power increase,
// then averages over every in-band bin. On Flush the accumulated
// curve is max-normalized and emitted once as a real frame at sr/Hop.
type OnsetStrength struct {
	graph.Base
	FLo, FHi       float64
	Hop            int
	IncreaseFactor float64

	prevPower []float64
	curve     []float64
	format    *audioformat.Format
	fn        int64
	started   bool
}

// NewOnsetStrength builds an OnsetStrength node.
func NewOnsetStrength(fLo, fHi float64, hop int, increaseFactor float64) (*OnsetStrength, error) {
	if fHi <= fLo || hop <= 0 {
		return nil, sgerr.New(sgerr.Configuration, "NewOnsetStrength", nil)
	}
	return &OnsetStrength{FLo: fLo, FHi: fHi, Hop: hop, IncreaseFactor: increaseFactor}, nil
}

func (n *OnsetStrength) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindLinearSpectrum {
		return sgerr.New(sgerr.Configuration, "OnsetStrength.Process", errWrongKind(in.Kind, frame.KindLinearSpectrum))
	}
	if !n.started {
		n.format = in.Format
		n.fn = in.FrameNumber
		n.started = true
	}

	power := in.Power()
	if n.prevPower == nil {
		n.prevPower = make([]float64, len(power))
		for i, p := range power {
			n.prevPower[i] = float64(p)
		}
		return nil
	}

	var sum float64
	var count int
	for k, p := range power {
		f := frame.BinFrequencyHz(in.Format.SampleRate, len(power), k)
		if f < n.FLo || f > n.FHi {
			continue
		}
		count++
		curr := float64(p)
		prev := n.prevPower[k]
		if curr > n.IncreaseFactor*prev {
			sum += math.Log(curr+1) - math.Log(prev+1)
		}
	}
	for i, p := range power {
		n.prevPower[i] = float64(p)
	}

	var sample float64
	if count > 0 {
		sample = sum / float64(count)
	}
	n.curve = append(n.curve, sample)
	return nil
}

func (n *OnsetStrength) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	numeric.NormalizeMax(n.curve)
	samples := toFloat32(n.curve)
	outFormat := n.format
	if outFormat != nil {
		f := *outFormat
		f.SampleRate = f.SampleRate / n.Hop
		outFormat = &f
	}
	out := frame.NewReal(outFormat, n.fn, samples)
	n.SetOutput(out)
	if err := forward(n.ChildList(), out); err != nil {
		return err
	}
	return flushChildren(n.ChildList())
}

func (n *OnsetStrength) Equal(other graph.PushNode) bool {
	o, ok := other.(*OnsetStrength)
	return ok && o.FLo == n.FLo && o.FHi == n.FHi && o.Hop == n.Hop && o.IncreaseFactor == n.IncreaseFactor
}
