package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
)

func TestFrameNumberFilter_ForwardsOnlyMatches(t *testing.T) {
	n := NewFrameNumberFilter("even", func(fn int64) bool { return fn%2 == 0 })
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	for i := int64(0); i < 5; i++ {
		require.NoError(t, n.Process(frame.NewReal(f, i, []float32{float32(i)})))
	}

	require.Len(t, sink.frames, 3)
	assert.Equal(t, int64(0), sink.frames[0].FrameNumber)
	assert.Equal(t, int64(2), sink.frames[1].FrameNumber)
	assert.Equal(t, int64(4), sink.frames[2].FrameNumber)
}

func TestFrameNumberFilter_EqualByName(t *testing.T) {
	a := NewFrameNumberFilter("even", func(fn int64) bool { return fn%2 == 0 })
	b := NewFrameNumberFilter("even", func(fn int64) bool { return true })
	c := NewFrameNumberFilter("odd", func(fn int64) bool { return fn%2 == 1 })

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
