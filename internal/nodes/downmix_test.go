package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

func TestMonoDownmix_StereoPairsAverage(t *testing.T) {
	// Stereo [0.5,-0.5,0.2,-0.2] -> [0, 0].
	n := NewMonoDownmix()
	sink := &collector{}
	n.AddChild(sink)

	in := frame.NewReal(stereoFormat(44100), 0, []float32{0.5, -0.5, 0.2, -0.2})
	require.NoError(t, n.Process(in))

	require.Len(t, sink.frames, 1)
	out := sink.frames[0]
	assert.Equal(t, []float32{0, 0}, out.Real)
	assert.Equal(t, 1, out.Format.Channels)
	assert.Equal(t, 44100, out.Format.SampleRate)
}

func TestMonoDownmix_MonoPassesThroughUnchanged(t *testing.T) {
	n := NewMonoDownmix()
	sink := &collector{}
	n.AddChild(sink)

	require.NoError(t, n.Process(frame.NewReal(monoFormat(8000), 3, []float32{0.25, -0.75})))

	require.Len(t, sink.frames, 1)
	assert.Equal(t, []float32{0.25, -0.75}, sink.frames[0].Real)
	assert.Equal(t, int64(3), sink.frames[0].FrameNumber)
}

func TestMonoDownmix_RejectsSpectralInput(t *testing.T) {
	n := NewMonoDownmix()
	err := n.Process(frame.NewLinearSpectrum(monoFormat(8000), 0, []float32{1}, []float32{0}))

	var se *sgerr.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, sgerr.Configuration, se.Kind)
}
