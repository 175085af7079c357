package numeric

import "math"

// LowpassFIR designs an odd-length windowed-sinc low-pass filter with cutoff
// fc expressed as a fraction of the sample rate (0, 0.5), normalized for
// unity gain at DC.
func LowpassFIR(fc float64, taps int, kind WindowKind) []float64 {
	h := make([]float64, taps)
	center := 0.5 * float64(taps-1)
	for j := 0; j < taps; j++ {
		x := float64(j) - center
		var sinc float64
		if x == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		h[j] = sinc * WindowValue(kind, taps, j)
	}
	normalizeDC(h)
	return h
}

func normalizeDC(h []float64) {
	var g float64
	for _, v := range h {
		g += v
	}
	if g == 0 {
		return
	}
	for i := range h {
		h[i] /= g
	}
}

// FIR convolves x with taps h in one shot (full causal convolution, output
// length len(x)+len(h)-1). The streaming nodes use FilterState instead,
// whose output matches the first len(x) samples of FIR.
func FIR(h, x []float64) []float64 {
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		if xv == 0 {
			continue
		}
		for j, hv := range h {
			out[i+j] += hv * xv
		}
	}
	return out
}

// FilterState is a running FIR filter with internal history, used by
// Decimate/Interpolate so successive Process calls behave as one continuous
// stream rather than independently-convolved blocks.
type FilterState struct {
	Taps    []float64
	history []float64
}

// NewFilterState builds a streaming FIR filter with the given taps.
func NewFilterState(taps []float64) *FilterState {
	return &FilterState{Taps: taps, history: make([]float64, len(taps)-1)}
}

// Process filters in, returning len(in) output samples, and retains the tail
// of in (plus any carried history) for the next call.
func (f *FilterState) Process(in []float64) []float64 {
	buf := make([]float64, len(f.history)+len(in))
	copy(buf, f.history)
	copy(buf[len(f.history):], in)

	out := make([]float64, len(in))
	for i := range out {
		var acc float64
		// buf[i+len(Taps)-1] is the newest sample contributing to out[i];
		// taps[0] multiplies the newest sample (direct-form FIR).
		for j, h := range f.Taps {
			acc += h * buf[i+len(f.Taps)-1-j]
		}
		out[i] = acc
	}

	if n := len(f.history); n > 0 {
		if len(buf) >= n {
			copy(f.history, buf[len(buf)-n:])
		}
	}
	return out
}

// decimationTaps and interpolationTaps are keyed by integer factor;
// unsupported factors are a Configuration error detected on first input,
// not at construction.
var decimationTaps = map[int][]float64{
	2: LowpassFIR(0.5/2, 31, WindowHamming),
	3: LowpassFIR(0.5/3, 47, WindowHamming),
	4: LowpassFIR(0.5/4, 63, WindowHamming),
	6: LowpassFIR(0.5/6, 95, WindowHamming),
	8: LowpassFIR(0.5/8, 127, WindowHamming),
}

// interpolationTaps holds the decimationTaps designs rescaled for
// interpolation (cutoff at 1/(2L) of the upsampled rate). Each of the L
// polyphase branches (taps i, i+L, i+2L, ...) is normalized to sum to 1, so
// a zero-stuffed constant input comes out constant at every output phase;
// the overall gain is L, compensating for the L-1 inserted zeros per sample.
var interpolationTaps = func() map[int][]float64 {
	m := make(map[int][]float64, len(decimationTaps))
	for factor, h := range decimationTaps {
		sums := make([]float64, factor)
		for i, v := range h {
			sums[i%factor] += v
		}
		scaled := make([]float64, len(h))
		for i, v := range h {
			scaled[i] = v / sums[i%factor]
		}
		m[factor] = scaled
	}
	return m
}()

// DecimationTapsFor returns the low-pass FIR used to anti-alias before
// keeping every factor-th sample, or ok=false for an unsupported factor.
func DecimationTapsFor(factor int) (taps []float64, ok bool) {
	taps, ok = decimationTaps[factor]
	return
}

// InterpolationTapsFor returns the low-pass FIR used to smooth an
// L-1-zero-stuffed stream, or ok=false for an unsupported factor.
func InterpolationTapsFor(factor int) (taps []float64, ok bool) {
	taps, ok = interpolationTaps[factor]
	return
}

// MainsNotchCoefficients designs a hum-rejection FIR for mains frequency hz
// at sample rate sr: a high-pass made by spectral inversion of a unity-gain
// Blackman low-pass with cutoff hz-2 Hz, so its DC gain is zero and
// frequencies well above hz pass at unity. It is not a narrow notch: hz
// itself lies in the transition band and is only partly attenuated, and the
// second harmonic is not specially attenuated.
// hz is normally mains.FrequencyHz's result for the caller's locale.
func MainsNotchCoefficients(hz, sr float64, taps int) []float64 {
	lp := LowpassFIR((hz-2)/sr, taps, WindowBlackman)
	h := make([]float64, taps)
	center := (taps - 1) / 2
	for i := range h {
		h[i] = -lp[i]
	}
	h[center] += 1
	return h
}
