package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestChannelSelect_PicksOneChannel(t *testing.T) {
	n := NewChannelSelect(1)
	sink := &collector{}
	n.AddChild(sink)

	in := frame.NewReal(stereoFormat(44100), 0, []float32{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, n.Process(in))

	require.Len(t, sink.frames, 1)
	assert.Equal(t, []float32{0.2, 0.4}, sink.frames[0].Real)
	assert.Equal(t, 1, sink.frames[0].Format.Channels)
}

func TestChannelSelect_OutOfRangeChannel(t *testing.T) {
	n := NewChannelSelect(2)
	err := n.Process(frame.NewReal(stereoFormat(44100), 0, []float32{0.1, 0.2}))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}

func TestInterleavedChannelSplit_DeinterleavesPerChannel(t *testing.T) {
	n := NewInterleavedChannelSplit(2)
	left, right := &collector{}, &collector{}
	n.AddChildOnChannel(0, left)
	n.AddChildOnChannel(1, right)

	in := frame.NewReal(stereoFormat(44100), 0, []float32{0.1, -0.1, 0.2, -0.2})
	require.NoError(t, n.Process(in))
	require.NoError(t, n.Flush())

	require.Len(t, left.frames, 1)
	require.Len(t, right.frames, 1)
	assert.Equal(t, []float32{0.1, 0.2}, left.frames[0].Real)
	assert.Equal(t, []float32{-0.1, -0.2}, right.frames[0].Real)
	assert.Equal(t, 1, left.frames[0].Format.Channels)
}

func TestInterleavedChannelSplit_ChannelCountMismatch(t *testing.T) {
	n := NewInterleavedChannelSplit(2)
	err := n.Process(frame.NewReal(monoFormat(44100), 0, []float32{0.1}))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}

func TestInterleavedChannelSplit_NeverMerges(t *testing.T) {
	a := NewInterleavedChannelSplit(2)
	b := NewInterleavedChannelSplit(2)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(a))
}

func TestJoin_AggregatesBalancedRounds(t *testing.T) {
	sum := func(inputs []*frame.Frame) (*frame.Frame, error) {
		out := make([]float32, len(inputs[0].Real))
		for _, f := range inputs {
			for i, v := range f.Real {
				out[i] += v
			}
		}
		return frame.NewReal(inputs[0].Format, inputs[0].FrameNumber, out), nil
	}

	n := NewJoin(2, sum)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	require.NoError(t, n.Process(frame.NewReal(f, 0, []float32{1, 2})))
	assert.Empty(t, sink.frames, "one input of two buffered, nothing emitted yet")

	require.NoError(t, n.Process(frame.NewReal(f, 0, []float32{10, 20})))
	require.Len(t, sink.frames, 1)
	assert.Equal(t, []float32{11, 22}, sink.frames[0].Real)
}

func TestJoin_UnbalancedFinalRoundDiscarded(t *testing.T) {
	n := NewJoin(2, func(inputs []*frame.Frame) (*frame.Frame, error) {
		return inputs[0], nil
	})
	sink := &collector{}
	n.AddChild(sink)

	require.NoError(t, n.Process(frame.NewReal(monoFormat(8000), 0, []float32{1})))
	require.NoError(t, n.Flush())
	assert.Empty(t, sink.frames)
}
