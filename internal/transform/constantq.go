package transform

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/matrix"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// ConstantQKernel is the sparse spectral kernel of the Brown-Puckette
// constant-Q transform: built once at first frame, then reused for
// every subsequent Transform call. The kernel is stored transposed and
// conjugated, as two real matrix.Sparse matrices (real/imaginary part).
type ConstantQKernel struct {
	FMin, FMax    float64
	BinsPerOctave int
	SampleRate    int
	Threshold     float64

	K             int
	FFTLen        int
	CenterFreqsHz []float64

	kernelRe *matrix.Sparse // FFTLen x K
	kernelIm *matrix.Sparse
}

// NewConstantQKernel builds the sparse kernel for the given parameters.
// A non-positive binsPerOctave or fmin, or fmax <= fmin, is a Configuration
// error; fmax is not checked against the Nyquist frequency.
func NewConstantQKernel(fmin, fmax float64, binsPerOctave, sampleRate int, threshold float64) (*ConstantQKernel, error) {
	if binsPerOctave <= 0 || fmin <= 0 || fmax <= fmin {
		return nil, sgerr.New(sgerr.Configuration, "transform.NewConstantQKernel", nil)
	}

	q := 1 / (math.Pow(2, 1/float64(binsPerOctave)) - 1)
	k := int(math.Ceil(float64(binsPerOctave) * math.Log2(fmax/fmin)))
	if k <= 0 {
		return nil, sgerr.New(sgerr.Configuration, "transform.NewConstantQKernel", nil)
	}

	centerFreqs := make([]float64, k)
	nForBin := make([]int, k)
	maxN := 0
	for i := 0; i < k; i++ {
		fk := fmin * math.Pow(2, float64(i)/float64(binsPerOctave))
		centerFreqs[i] = fk
		nk := int(math.Ceil(q * float64(sampleRate) / fk))
		if nk < 1 {
			nk = 1
		}
		nForBin[i] = nk
		if nk > maxN {
			maxN = nk
		}
	}

	fftLen := NextPowerOfTwo(maxN)
	ck := &ConstantQKernel{
		FMin: fmin, FMax: fmax, BinsPerOctave: binsPerOctave, SampleRate: sampleRate, Threshold: threshold,
		K: k, FFTLen: fftLen, CenterFreqsHz: centerFreqs,
		kernelRe: matrix.NewSparse(fftLen, k),
		kernelIm: matrix.NewSparse(fftLen, k),
	}
	ck.build(nForBin)
	return ck, nil
}

func (ck *ConstantQKernel) build(nForBin []int) {
	q := 1 / (math.Pow(2, 1/float64(ck.BinsPerOctave)) - 1)

	for col := 0; col < ck.K; col++ {
		nk := nForBin[col]

		tRe := make([]float64, nk)
		tIm := make([]float64, nk)
		for n := 0; n < nk; n++ {
			w := numeric.WindowValue(numeric.WindowHamming, nk, n) / float64(nk)
			angle := -2 * math.Pi * q * float64(n) / float64(nk)
			tRe[n] = w * math.Cos(angle)
			tIm[n] = w * math.Sin(angle)
		}

		specRe := make([]float64, ck.FFTLen)
		specIm := make([]float64, ck.FFTLen)
		copy(specRe, tRe)
		copy(specIm, tIm)
		fftAny(specRe, specIm)

		maxMag := 0.0
		for i := range specRe {
			m := math.Hypot(specRe[i], specIm[i])
			if m > maxMag {
				maxMag = m
			}
		}
		if maxMag == 0 {
			continue
		}

		for i := range specRe {
			mag := math.Hypot(specRe[i], specIm[i]) / maxMag
			if mag < ck.Threshold {
				continue
			}
			// Conjugate and transpose: store at [fftBin][bin], value = conj(spectrum).
			ck.kernelRe.Set(i, col, float32(specRe[i]))
			ck.kernelIm.Set(i, col, float32(-specIm[i]))
		}
	}
}

// Transform applies the kernel to one frame of time-domain samples, zero-
// padded to FFTLen by the FFT step, returning K complex bins. Input longer
// than FFTLen is rejected by the FFT step with a Configuration error.
func (ck *ConstantQKernel) Transform(x []float64) (re, im []float64, err error) {
	inRe, inIm, err := FFT(x, ck.FFTLen)
	if err != nil {
		return nil, nil, err
	}

	re = make([]float64, ck.K)
	im = make([]float64, ck.K)
	// Complex multiply-accumulate: (kre+i*kim)*(inRe+i*inIm), summed per column.
	ck.kernelRe.Each(func(i, col int, v float32) {
		re[col] += float64(v) * inRe[i]
		im[col] += float64(v) * inIm[i]
	})
	ck.kernelIm.Each(func(i, col int, v float32) {
		re[col] -= float64(v) * inIm[i]
		im[col] += float64(v) * inRe[i]
	})
	return re, im, nil
}
