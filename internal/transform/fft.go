// Package transform implements the numerically sensitive kernels the graph
// drives: FFT (radix-2 and Bluestein), IFFT, DCT-II, constant-Q, and
// Griffin-Lim phase recovery. Every function here is channel-agnostic
// (operates on a single []float64 signal); mono-only enforcement belongs to
// the node wrappers in package nodes, which own the Configuration error.
package transform

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// FFT computes the N-point DFT of x (zero-padded at the tail if shorter than
// n, an error if longer). DC is at index 0; for real input, output satisfies
// X[N-k] = conj(X[k]). Uses Cooley-Tukey radix-2 when n is a power of two,
// otherwise Bluestein's algorithm.
func FFT(x []float64, n int) (re, im []float64, err error) {
	if len(x) > n {
		return nil, nil, sgerr.New(sgerr.Configuration, "transform.FFT", nil)
	}
	re = make([]float64, n)
	im = make([]float64, n)
	copy(re, x)
	fftAny(re, im)
	return re, im, nil
}

// IFFT is the forward kernel with conjugation and 1/N scaling.
func IFFT(re, im []float64) (outRe, outIm []float64, err error) {
	if len(re) != len(im) {
		return nil, nil, sgerr.New(sgerr.Invariant, "transform.IFFT", nil)
	}
	n := len(re)
	outRe = append([]float64(nil), re...)
	outIm = make([]float64, n)
	for i, v := range im {
		outIm[i] = -v
	}
	fftAny(outRe, outIm)
	inv := 1 / float64(n)
	for i := range outRe {
		outRe[i] *= inv
		outIm[i] = -outIm[i] * inv
	}
	return outRe, outIm, nil
}

// LengthForResolution returns the smallest N such that sr/N <= res, i.e.
// N = ceil(sr/res).
func LengthForResolution(sampleRate int, resolutionHz float64) int {
	return int(math.Ceil(float64(sampleRate) / resolutionHz))
}

// IsPowerOfTwo reports whether n is an exact power of two (n > 0).
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// fftAny dispatches to the radix-2 kernel when len(re) is a power of two,
// otherwise to Bluestein's chirp-z algorithm; always in place.
func fftAny(re, im []float64) {
	n := len(re)
	if n <= 1 {
		return
	}
	if IsPowerOfTwo(n) {
		radix2(re, im, false)
		return
	}
	bluestein(re, im)
}

// radix2 is the in-place iterative Cooley-Tukey kernel for power-of-two
// length, with bit-reversal permutation and twiddles computed once per stage
// and shared by every butterfly block of that stage (not cached across
// calls — node wrappers that reuse a fixed N are the natural place to cache
// twiddles across frames if ever needed).
func radix2(re, im []float64, invert bool) {
	n := len(re)

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		angleStep := -2 * math.Pi / float64(size)
		if invert {
			angleStep = -angleStep
		}
		wr := make([]float64, half)
		wi := make([]float64, half)
		for k := 0; k < half; k++ {
			angle := angleStep * float64(k)
			wr[k], wi[k] = math.Cos(angle), math.Sin(angle)
		}
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				aIdx, bIdx := start+k, start+k+half
				br, bi := re[bIdx]*wr[k]-im[bIdx]*wi[k], re[bIdx]*wi[k]+im[bIdx]*wr[k]
				re[bIdx] = re[aIdx] - br
				im[bIdx] = im[aIdx] - bi
				re[aIdx] += br
				im[aIdx] += bi
			}
		}
	}

	if invert {
		inv := 1 / float64(n)
		for i := range re {
			re[i] *= inv
			im[i] *= inv
		}
	}
}

// bluestein computes an arbitrary-length DFT by expressing it as a
// convolution, evaluated with the power-of-two radix2 kernel (the chirp-z
// trick); FFT uses it for every non-power-of-two length.
func bluestein(re, im []float64) {
	n := len(re)
	m := NextPowerOfTwo(2*n - 1)

	cosTable := make([]float64, n)
	sinTable := make([]float64, n)
	for i := 0; i < n; i++ {
		angle := math.Pi * float64(i) * float64(i) / float64(n)
		cosTable[i] = math.Cos(angle)
		sinTable[i] = math.Sin(angle)
	}

	aRe := make([]float64, m)
	aIm := make([]float64, m)
	for i := 0; i < n; i++ {
		aRe[i] = re[i]*cosTable[i] + im[i]*sinTable[i]
		aIm[i] = -re[i]*sinTable[i] + im[i]*cosTable[i]
	}

	bRe := make([]float64, m)
	bIm := make([]float64, m)
	bRe[0] = cosTable[0]
	bIm[0] = sinTable[0]
	for i := 1; i < n; i++ {
		bRe[i] = cosTable[i]
		bIm[i] = sinTable[i]
		bRe[m-i] = cosTable[i]
		bIm[m-i] = sinTable[i]
	}

	radix2(aRe, aIm, false)
	radix2(bRe, bIm, false)
	for i := 0; i < m; i++ {
		cr := aRe[i]*bRe[i] - aIm[i]*bIm[i]
		ci := aRe[i]*bIm[i] + aIm[i]*bRe[i]
		aRe[i], aIm[i] = cr, ci
	}
	radix2(aRe, aIm, true)

	for i := 0; i < n; i++ {
		re[i] = aRe[i]*cosTable[i] + aIm[i]*sinTable[i]
		im[i] = -aRe[i]*sinTable[i] + aIm[i]*cosTable[i]
	}
}
