package nodes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestNewOnsetStrength_Validation(t *testing.T) {
	_, err := NewOnsetStrength(3000, 500, 2, 1.5)
	assert.Error(t, err)
	_, err = NewOnsetStrength(500, 3000, 0, 1.5)
	assert.Error(t, err)
}

func TestOnsetStrength_RisingBinProducesNormalizedCurve(t *testing.T) {
	// 8-bin spectra at 8 kHz put bins 1 and 2 (1000 and 2000 Hz) inside the
	// [500, 2500] band. Bin 1's power rises 1 -> 9 between the first two
	// scored frames, then holds.
	n, err := NewOnsetStrength(500, 2500, 2, 2)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	quiet := []float32{0, 1, 0, 0, 0, 0, 0, 0}
	loud := []float32{0, 3, 0, 0, 0, 0, 0, 0}

	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 0, quiet, nil)))
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 2, loud, nil)))
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 4, loud, nil)))
	assert.Empty(t, sink.frames, "curve is only emitted on flush")

	require.NoError(t, n.Flush())
	require.Len(t, sink.frames, 1)
	out := sink.frames[0]

	// The first frame only seeds prevPower, so two curve samples remain:
	// the onset, max-normalized to 1, then the steady frame at 0.
	require.Len(t, out.Real, 2)
	assert.InDelta(t, 1, out.Real[0], 1e-6)
	assert.InDelta(t, 0, out.Real[1], 1e-6)
	assert.Equal(t, 4000, out.Format.SampleRate, "curve rate is sr/hop")
}

func TestOnsetStrength_UnnormalizedSampleValue(t *testing.T) {
	// With a single scored frame, max-normalization divides the sample by
	// itself; check the raw accumulation instead via two distinct rises.
	n, err := NewOnsetStrength(500, 2500, 1, 2)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 0, []float32{0, 1, 0, 0, 0, 0, 0, 0}, nil)))
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 1, []float32{0, 3, 0, 0, 0, 0, 0, 0}, nil)))
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 2, []float32{0, 9, 0, 0, 0, 0, 0, 0}, nil)))
	require.NoError(t, n.Flush())

	out := sink.frames[0]
	require.Len(t, out.Real, 2)

	// Sample k averages log-power increases over the 2 in-band bins:
	// (log(p+1) - log(q+1)) / 2 for the rising bin, 0 for the quiet one.
	s0 := (math.Log(10) - math.Log(2)) / 2
	s1 := (math.Log(82) - math.Log(10)) / 2
	want0 := s0 / math.Max(s0, s1)
	want1 := s1 / math.Max(s0, s1)
	assert.InDelta(t, want0, out.Real[0], 1e-5)
	assert.InDelta(t, want1, out.Real[1], 1e-5)
}

func TestOnsetStrength_RejectsTimeDomainInput(t *testing.T) {
	n, err := NewOnsetStrength(500, 2500, 2, 2)
	require.NoError(t, err)

	err = n.Process(frame.NewReal(monoFormat(8000), 0, []float32{1}))
	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}
