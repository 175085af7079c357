package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestNewMel_Validation(t *testing.T) {
	_, err := NewMel(100, 3000, 0, false)
	assert.Error(t, err)
	_, err = NewMel(3000, 100, 8, false)
	assert.Error(t, err)
}

func TestMel_NormalizedRowsSumToOne(t *testing.T) {
	// With unit magnitudes in every input bin, each output channel is its
	// filter row's sum, which normalization pins to 1.
	n, err := NewMel(100, 3000, 8, false)
	require.NoError(t, err)
	n.Normalize = true
	sink := &collector{}
	n.AddChild(sink)

	bins := make([]float32, 256)
	for i := range bins {
		bins[i] = 1
	}
	in := frame.NewLinearSpectrum(monoFormat(8000), 0, bins, nil)
	require.NoError(t, n.Process(in))

	require.Len(t, sink.frames, 1)
	out := sink.frames[0]
	assert.Equal(t, frame.KindMelSpectrum, out.Kind)
	require.Len(t, out.Real, 8)
	for b, v := range out.Real {
		assert.InDelta(t, 1, v, 1e-5, "channel %d", b)
	}
	assert.Len(t, out.BinBoundariesHz, 10, "channels+2 Hz edges")
}

func TestMel_EnergyOutsideBoundsIsIgnored(t *testing.T) {
	n, err := NewMel(500, 3000, 6, false)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	// All energy at bin 1 of a 256-bin spectrum at 12.8 kHz: 50 Hz, well
	// below the 500 Hz lower edge.
	bins := make([]float32, 256)
	bins[1] = 10
	require.NoError(t, n.Process(frame.NewLinearSpectrum(monoFormat(12800), 0, bins, nil)))

	require.Len(t, sink.frames, 1)
	for b, v := range sink.frames[0].Real {
		assert.Zero(t, v, "channel %d", b)
	}
}

func TestMel_FilterPowersSelectsPowers(t *testing.T) {
	n, err := NewMel(100, 3000, 4, true)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	bins := make([]float32, 64)
	for i := range bins {
		bins[i] = 2
	}
	require.NoError(t, n.Process(frame.NewLinearSpectrum(monoFormat(8000), 0, bins, nil)))

	require.Len(t, sink.frames, 1)
	out := sink.frames[0]
	assert.True(t, out.FilterPowers)

	// The same spectrum through a magnitude-filtering twin yields exactly
	// half each channel (power 4 vs magnitude 2 per bin).
	m, err := NewMel(100, 3000, 4, false)
	require.NoError(t, err)
	magSink := &collector{}
	m.AddChild(magSink)
	require.NoError(t, m.Process(frame.NewLinearSpectrum(monoFormat(8000), 0, bins, nil)))

	for b := range out.Real {
		assert.InDelta(t, out.Real[b], 2*magSink.frames[0].Real[b], 1e-4, "channel %d", b)
	}
}

func TestMel_RejectsTimeDomainInput(t *testing.T) {
	n, err := NewMel(100, 3000, 8, false)
	require.NoError(t, err)

	err = n.Process(frame.NewReal(monoFormat(8000), 0, []float32{1, 2, 3}))
	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}
