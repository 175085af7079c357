package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestBandSplit_SlicesBandMajor(t *testing.T) {
	n := NewBandSplit(3, 2)
	sinks := []*collector{{}, {}, {}}
	for b, s := range sinks {
		n.AddChildOnChannel(b, s)
	}

	f := monoFormat(8000)
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 0, []float32{1, 2, 3}, nil)))
	for _, s := range sinks {
		assert.Empty(t, s.frames, "nothing emitted before W spectra accumulate")
	}

	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 1, []float32{4, 5, 6}, nil)))

	want := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for b, s := range sinks {
		require.Len(t, s.frames, 1, "band %d", b)
		assert.Equal(t, want[b], s.frames[0].Real, "band %d", b)
		assert.Equal(t, frame.KindReal, s.frames[0].Kind)
	}
}

func TestBandSplit_FlushZeroPadsPartialAccumulation(t *testing.T) {
	n := NewBandSplit(2, 3)
	sinks := []*collector{{}, {}}
	for b, s := range sinks {
		n.AddChildOnChannel(b, s)
	}

	f := monoFormat(8000)
	require.NoError(t, n.Process(frame.NewLinearSpectrum(f, 0, []float32{7, 8}, nil)))
	require.NoError(t, n.Flush())

	assert.Equal(t, []float32{7, 0, 0}, sinks[0].frames[0].Real)
	assert.Equal(t, []float32{8, 0, 0}, sinks[1].frames[0].Real)
}

func TestBandSplit_BinCountMismatch(t *testing.T) {
	n := NewBandSplit(3, 2)
	err := n.Process(frame.NewLinearSpectrum(monoFormat(8000), 0, []float32{1, 2}, nil))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}

func TestBandSplit_NeverMerges(t *testing.T) {
	a := NewBandSplit(3, 2)
	assert.False(t, a.Equal(NewBandSplit(3, 2)))
}
