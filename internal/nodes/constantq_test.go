package nodes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestConstantQ_PeakBinForPureTone(t *testing.T) {
	// A 440 Hz sine with fmin=440, fmax=880,
	// binsPerOctave=12 peaks at bin 0.
	const sr = 8000
	n := NewConstantQ(440, 880, 12, 0.0054)
	sink := &collector{}
	n.AddChild(sink)

	x := make([]float32, 512)
	for i := range x {
		x[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / sr))
	}
	require.NoError(t, n.Process(frame.NewReal(monoFormat(sr), 0, x)))

	require.Len(t, sink.frames, 1)
	out := sink.frames[0]
	assert.Equal(t, frame.KindLogSpectrum, out.Kind)
	require.Len(t, out.Real, 12)

	mags := make([]float64, len(out.Real))
	for k := range out.Real {
		mags[k] = math.Hypot(float64(out.Real[k]), float64(out.Imag[k]))
	}
	assert.Equal(t, 0, numeric.ArgMax(mags))

	assert.InDelta(t, 440, out.CenterFreqsHz[0], 1e-9)
	assert.InDelta(t, 1/(math.Pow(2, 1.0/12)-1), out.ConstantQ, 1e-9)
}

func TestConstantQ_RejectsStereoInput(t *testing.T) {
	n := NewConstantQ(440, 880, 12, 0.0054)
	err := n.Process(frame.NewReal(stereoFormat(8000), 0, []float32{1, 2}))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}

func TestConstantQ_BadParametersFailOnFirstInput(t *testing.T) {
	n := NewConstantQ(880, 440, 12, 0.0054)
	err := n.Process(frame.NewReal(monoFormat(8000), 0, []float32{1}))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}
