package nodes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/numeric"
)

func TestGaussianCheckerboardKernel_QuadrantSigns(t *testing.T) {
	k := GaussianCheckerboardKernel(4, 1, false)

	assert.Positive(t, k[0][0], "same-sign quadrant")
	assert.Positive(t, k[3][3], "same-sign quadrant")
	assert.Negative(t, k[0][3], "cross quadrant")
	assert.Negative(t, k[3][0], "cross quadrant")
	assert.InDelta(t, k[0][0], k[3][3], 1e-12, "Gaussian taper is symmetric")
}

func TestGaussianCheckerboardKernel_NormalizedAbsSumIsOne(t *testing.T) {
	k := GaussianCheckerboardKernel(6, 1.5, true)
	var absSum float64
	for i := range k {
		for j := range k[i] {
			absSum += math.Abs(k[i][j])
		}
	}
	assert.InDelta(t, 1, absSum, 1e-9)
}

func TestNovelty_ConstantStreamScoresZero(t *testing.T) {
	kernel := GaussianCheckerboardKernel(4, 1, true)
	n, err := NewNovelty("euclidean", numeric.Euclidean, kernel, false)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	for i := 0; i < 10; i++ {
		require.NoError(t, n.Process(frame.NewReal(f, int64(i), []float32{0.5, 0.5})))
	}
	require.NoError(t, n.Flush())

	// The first and last k/2 outputs are suppressed, leaving 10 - 4.
	require.Len(t, sink.frames, 6)
	for i, out := range sink.frames {
		assert.InDelta(t, 0, out.Real[0], 1e-9, "output %d", i)
	}
}

func TestNovelty_BoundaryBetweenClustersIsExtremal(t *testing.T) {
	// Two constant clusters: the kernel's cross quadrants (negative sign)
	// line up with the only non-zero distances exactly when the rolling
	// matrix straddles the boundary, so that output is the most negative.
	kernel := GaussianCheckerboardKernel(4, 1, true)
	n, err := NewNovelty("euclidean", numeric.Euclidean, kernel, false)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	a, b := []float32{1, 0}, []float32{0, 1}
	for i := 0; i < 5; i++ {
		require.NoError(t, n.Process(frame.NewReal(f, int64(i), a)))
	}
	for i := 5; i < 10; i++ {
		require.NoError(t, n.Process(frame.NewReal(f, int64(i), b)))
	}
	require.NoError(t, n.Flush())

	require.Len(t, sink.frames, 6)
	scores := make([]float64, len(sink.frames))
	for i, out := range sink.frames {
		scores[i] = float64(out.Real[0])
	}

	// Emitted outputs correspond to the matrices after inputs 3..8; the
	// buffer [a,a,b,b] (input 7, output index 4) is the straddle point.
	boundary := 4
	for i, s := range scores {
		if i == boundary {
			continue
		}
		assert.LessOrEqual(t, scores[boundary], s, "boundary must be minimal, output %d", i)
	}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, scores[i], 1e-9, "uniform region before the boundary, output %d", i)
	}
	assert.Less(t, scores[boundary], scores[0]-1e-6, "boundary is strictly below the uniform region")
}

func TestNovelty_ZeroPadEmitsFullSequence(t *testing.T) {
	kernel := GaussianCheckerboardKernel(4, 1, true)
	n, err := NewNovelty("euclidean", numeric.Euclidean, kernel, true)
	require.NoError(t, err)
	sink := &collector{}
	n.AddChild(sink)

	f := monoFormat(8000)
	for i := 0; i < 6; i++ {
		require.NoError(t, n.Process(frame.NewReal(f, int64(i), []float32{float32(i)})))
	}
	require.NoError(t, n.Flush())

	// One score per advance plus k/2 zero-shifted trailing scores.
	require.Len(t, sink.frames, 8)
	assert.Zero(t, sink.frames[0].Real[0], "an empty matrix scores zero")
}

func TestNovelty_SuppressionTrimsZeroPaddedSequence(t *testing.T) {
	// Running the same stream through both modes, disabling zero padding
	// drops the first and last k/2 entries of the padded sequence and
	// leaves the rest untouched.
	const inputs, k = 9, 4
	kernel := GaussianCheckerboardKernel(k, 1, true)

	run := func(zeroPad bool) []float32 {
		n, err := NewNovelty("euclidean", numeric.Euclidean, kernel, zeroPad)
		require.NoError(t, err)
		sink := &collector{}
		n.AddChild(sink)
		f := monoFormat(8000)
		for i := 0; i < inputs; i++ {
			require.NoError(t, n.Process(frame.NewReal(f, int64(i), []float32{float32(i % 3), float32(i % 2)})))
		}
		require.NoError(t, n.Flush())
		return sink.concat()
	}

	padded := run(true)
	trimmed := run(false)

	require.Len(t, padded, inputs+k/2)
	require.Len(t, trimmed, inputs-k)
	assert.Equal(t, padded[k/2:inputs-k/2], trimmed)
}

func TestNewNovelty_RejectsEmptyKernel(t *testing.T) {
	_, err := NewNovelty("euclidean", numeric.Euclidean, nil, false)
	assert.Error(t, err)
}
