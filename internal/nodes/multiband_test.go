package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
)

func TestNewMultiBand_RejectsNonIncreasingBoundaries(t *testing.T) {
	_, err := NewMultiBand([]float64{0, 100, 100})
	assert.Error(t, err)
	_, err = NewMultiBand([]float64{0, 200, 100})
	assert.Error(t, err)
}

func TestMultiBand_GetBinHalfOpenIntervals(t *testing.T) {
	n, err := NewMultiBand([]float64{0, 100, 200})
	require.NoError(t, err)

	assert.Equal(t, 0, n.GetBin(0))
	assert.Equal(t, 0, n.GetBin(99.9))
	assert.Equal(t, 1, n.GetBin(100))
	assert.Equal(t, 1, n.GetBin(199.9))
	assert.Equal(t, -1, n.GetBin(200))
	assert.Equal(t, -1, n.GetBin(-1))
}

func TestMultiBand_SumsPowersExposesMagnitudes(t *testing.T) {
	n, err := NewMultiBand([]float64{0, 150, 400})
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	// 4 bins at 400 Hz: bin frequencies 0, 100, 200, 300. Band 0 holds bins
	// 0 and 1, band 1 holds bins 2 and 3.
	in := frame.NewLinearSpectrum(monoFormat(400), 0, []float32{3, 4, 0, 5}, nil)
	require.NoError(t, n.Process(in))

	require.Len(t, sink.frames, 1)
	out := sink.frames[0]
	assert.Equal(t, frame.KindMultiBandSpectrum, out.Kind)
	require.Len(t, out.Real, 2)
	assert.InDelta(t, 5, out.Real[0], 1e-6, "sqrt(3^2 + 4^2)")
	assert.InDelta(t, 5, out.Real[1], 1e-6, "sqrt(0^2 + 5^2)")
	assert.Equal(t, []float64{0, 150, 400}, out.BinBoundariesHz)
}
