package nodes

import (
	"fmt"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// Decimate low-pass filters then keeps every M-th sample. Factor is
// resolved against numeric.DecimationTapsFor on the first input; an
// unsupported factor fails with a kind-Configuration error there, not at
// construction.
type Decimate struct {
	graph.Base
	Factor int

	filt    *numeric.FilterState
	phase   int
	fn      int64
	out     *audioformat.Format
}

// NewDecimate builds a Decimate node for the given integer factor.
func NewDecimate(factor int) *Decimate { return &Decimate{Factor: factor} }

func (n *Decimate) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "Decimate.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.filt == nil {
		taps, ok := numeric.DecimationTapsFor(n.Factor)
		if !ok {
			return sgerr.New(sgerr.Configuration, "Decimate.Process", fmt.Errorf("unsupported decimation factor %d", n.Factor))
		}
		n.filt = numeric.NewFilterState(taps)
		f := *in.Format
		f.SampleRate = f.SampleRate / n.Factor
		n.out = &f
		n.fn = in.FrameNumber
	}
	filtered := n.filt.Process(toFloat64(in.Real))
	var kept []float32
	for _, v := range filtered {
		if n.phase == 0 {
			kept = append(kept, float32(v))
		}
		n.phase = (n.phase + 1) % n.Factor
	}
	if len(kept) == 0 {
		return nil
	}
	out := frame.NewReal(n.out, n.fn, kept)
	n.fn++
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Decimate) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Decimate) Equal(other graph.PushNode) bool {
	o, ok := other.(*Decimate)
	return ok && o.Factor == n.Factor
}

// Interpolate inserts Factor-1 zeros between samples, then low-pass
// filters to smooth the zero-stuffed stream.
type Interpolate struct {
	graph.Base
	Factor int

	filt *numeric.FilterState
	fn   int64
	out  *audioformat.Format
}

// NewInterpolate builds an Interpolate node for the given integer factor.
func NewInterpolate(factor int) *Interpolate { return &Interpolate{Factor: factor} }

func (n *Interpolate) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "Interpolate.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.filt == nil {
		taps, ok := numeric.InterpolationTapsFor(n.Factor)
		if !ok {
			return sgerr.New(sgerr.Configuration, "Interpolate.Process", fmt.Errorf("unsupported interpolation factor %d", n.Factor))
		}
		n.filt = numeric.NewFilterState(taps)
		f := *in.Format
		f.SampleRate = f.SampleRate * n.Factor
		n.out = &f
		n.fn = in.FrameNumber * int64(n.Factor)
	}
	stuffed := make([]float64, len(in.Real)*n.Factor)
	for i, v := range in.Real {
		stuffed[i*n.Factor] = float64(v)
	}
	filtered := n.filt.Process(stuffed)
	out := frame.NewReal(n.out, n.fn, toFloat32(filtered))
	n.fn += int64(len(filtered))
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Interpolate) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Interpolate) Equal(other graph.PushNode) bool {
	o, ok := other.(*Interpolate)
	return ok && o.Factor == n.Factor
}

// Resample composes interpolation by L with decimation by M into a single
// polyphase chain: zero-stuff by L, low-pass at the tighter of the
// two cutoffs, then keep every M-th sample.
type Resample struct {
	graph.Base
	L, M int

	filt  *numeric.FilterState
	phase int
	fn    int64
	out   *audioformat.Format
}

// NewResample builds a Resample node changing rate by L/M.
func NewResample(l, m int) *Resample { return &Resample{L: l, M: m} }

func (n *Resample) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "Resample.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.filt == nil {
		factor := n.L
		if n.M > n.L {
			factor = n.M
		}
		taps, ok := numeric.InterpolationTapsFor(factor)
		if !ok {
			return sgerr.New(sgerr.Configuration, "Resample.Process", fmt.Errorf("unsupported resample factor pair %d/%d", n.L, n.M))
		}
		scale := float64(n.L) / float64(factor)
		scaled := make([]float64, len(taps))
		for i, v := range taps {
			scaled[i] = v * scale
		}
		n.filt = numeric.NewFilterState(scaled)
		f := *in.Format
		f.SampleRate = f.SampleRate * n.L / n.M
		n.out = &f
		n.fn = in.FrameNumber * int64(n.L) / int64(n.M)
	}
	stuffed := make([]float64, len(in.Real)*n.L)
	for i, v := range in.Real {
		stuffed[i*n.L] = float64(v)
	}
	filtered := n.filt.Process(stuffed)
	var kept []float32
	for _, v := range filtered {
		if n.phase == 0 {
			kept = append(kept, float32(v))
		}
		n.phase = (n.phase + 1) % n.M
	}
	if len(kept) == 0 {
		return nil
	}
	out := frame.NewReal(n.out, n.fn, kept)
	n.fn++
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Resample) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Resample) Equal(other graph.PushNode) bool {
	o, ok := other.(*Resample)
	return ok && o.L == n.L && o.M == n.M
}

// Upsample naively inserts Factor-1 zeros between samples with no
// anti-aliasing filter, for callers who pre-filter themselves, kept
// distinct from Interpolate.
type Upsample struct {
	graph.Base
	Factor int
	out    *audioformat.Format
}

// NewUpsample builds a naive zero-stuffing Upsample node.
func NewUpsample(factor int) *Upsample { return &Upsample{Factor: factor} }

func (n *Upsample) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "Upsample.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.out == nil {
		f := *in.Format
		f.SampleRate = f.SampleRate * n.Factor
		n.out = &f
	}
	stuffed := make([]float32, len(in.Real)*n.Factor)
	for i, v := range in.Real {
		stuffed[i*n.Factor] = v
	}
	out := frame.NewReal(n.out, in.FrameNumber*int64(n.Factor), stuffed)
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Upsample) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Upsample) Equal(other graph.PushNode) bool {
	o, ok := other.(*Upsample)
	return ok && o.Factor == n.Factor
}

// Downsample naively keeps every Factor-th sample with no anti-aliasing
// filter, for callers who pre-filter themselves.
type Downsample struct {
	graph.Base
	Factor int
	phase  int
	fn     int64
	out    *audioformat.Format
}

// NewDownsample builds a naive sample-dropping Downsample node.
func NewDownsample(factor int) *Downsample { return &Downsample{Factor: factor} }

func (n *Downsample) Process(in *frame.Frame) error {
	n.MarkRunning()
	if in.Kind != frame.KindReal {
		return sgerr.New(sgerr.Configuration, "Downsample.Process", errWrongKind(in.Kind, frame.KindReal))
	}
	if n.out == nil {
		f := *in.Format
		f.SampleRate = f.SampleRate / n.Factor
		n.out = &f
		n.fn = in.FrameNumber / int64(n.Factor)
	}
	var kept []float32
	for _, v := range in.Real {
		if n.phase == 0 {
			kept = append(kept, v)
		}
		n.phase = (n.phase + 1) % n.Factor
	}
	if len(kept) == 0 {
		return nil
	}
	out := frame.NewReal(n.out, n.fn, kept)
	n.fn++
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Downsample) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	return flushChildren(n.ChildList())
}

func (n *Downsample) Equal(other graph.PushNode) bool {
	o, ok := other.(*Downsample)
	return ok && o.Factor == n.Factor
}
