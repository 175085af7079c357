package transform

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// GriffinLim iteratively reconstructs a time-domain signal from target
// magnitudes, alternating forward/inverse FFT while replacing magnitudes and
// preserving phase. initial seeds the time-domain estimate (e.g.
// random noise, or a prior estimate); convergence is measured as the
// relative change in reconstructed magnitude between iterations.
func GriffinLim(targetMag, initial []float64, iterations int, convergenceThreshold float64) ([]float64, error) {
	if initial == nil {
		return nil, sgerr.New(sgerr.Invariant, "transform.GriffinLim", nil)
	}
	n := len(targetMag)
	estimate := append([]float64(nil), initial...)
	if len(estimate) < n {
		padded := make([]float64, n)
		copy(padded, estimate)
		estimate = padded
	}

	var prevMag []float64
	for iter := 0; iter < iterations; iter++ {
		re, im, err := FFT(estimate, n)
		if err != nil {
			return nil, err
		}

		mag := make([]float64, n)
		for i := range re {
			mag[i] = math.Hypot(re[i], im[i])
			phase := math.Atan2(im[i], re[i])
			re[i] = targetMag[i] * math.Cos(phase)
			im[i] = targetMag[i] * math.Sin(phase)
		}

		outRe, _, err := IFFT(re, im)
		if err != nil {
			return nil, err
		}
		estimate = outRe

		if prevMag != nil && convergenceThreshold > 0 {
			if relativeChange(mag, prevMag) < convergenceThreshold {
				break
			}
		}
		prevMag = mag
	}
	return estimate, nil
}

func relativeChange(a, b []float64) float64 {
	var num, den float64
	for i := range a {
		d := a[i] - b[i]
		num += d * d
		den += b[i] * b[i]
	}
	if den == 0 {
		return 0
	}
	return math.Sqrt(num / den)
}
