package transform

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// DCTII computes the length-n type-II discrete cosine transform of x via a
// 2N real FFT with a post-transform twiddle: zero-pad x to n,
// zero-extend to 2n, FFT, then X[k] = 2*Re{exp(-i*pi*k/(2n)) * Y[k]}.
func DCTII(x []float64, n int) ([]float64, error) {
	if len(x) > n {
		return nil, sgerr.New(sgerr.Configuration, "transform.DCTII", nil)
	}

	y := make([]float64, 2*n)
	copy(y, x)

	yRe, yIm, err := FFT(y, 2*n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for k := 0; k < n; k++ {
		theta := math.Pi * float64(k) / float64(2*n)
		out[k] = 2 * (math.Cos(theta)*yRe[k] + math.Sin(theta)*yIm[k])
	}
	return out, nil
}
