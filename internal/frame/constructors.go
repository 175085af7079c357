package frame

import (
	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/matrix"
)

// NewMatrix builds a real-valued matrix frame, e.g. a self-similarity
// result.
func NewMatrix(f *audioformat.Format, frameNumber int64, m matrix.Matrix) *Frame {
	return &Frame{Kind: KindMatrix, Format: f, FrameNumber: frameNumber, Matrix: m}
}

// NewReal builds a time-domain PCM frame; its imaginary view is logically
// all-zero.
func NewReal(f *audioformat.Format, frameNumber int64, samples []float32) *Frame {
	return &Frame{Kind: KindReal, Format: f, FrameNumber: frameNumber, Real: samples}
}

// NewComplex builds a time-domain complex pair.
func NewComplex(f *audioformat.Format, frameNumber int64, real, imag []float32) *Frame {
	return &Frame{Kind: KindComplex, Format: f, FrameNumber: frameNumber, Real: real, Imag: imag}
}

// NewLinearSpectrum builds a linear-frequency spectrum frame: bin k maps to
// k*sampleRate/N via f.Format and len(real).
func NewLinearSpectrum(f *audioformat.Format, frameNumber int64, real, imag []float32) *Frame {
	return &Frame{Kind: KindLinearSpectrum, Format: f, FrameNumber: frameNumber, Real: real, Imag: imag}
}

// BinFrequencyHz returns the center frequency of bin k of a linear spectrum
// of length n at sample rate sr.
func BinFrequencyHz(sr, n, k int) float64 {
	return float64(k) * float64(sr) / float64(n)
}

// NewLogSpectrum builds a constant-Q-style spectrum with explicit per-bin
// center frequencies.
func NewLogSpectrum(f *audioformat.Format, frameNumber int64, real, imag []float32, centerFreqsHz []float64, q float64, shiftFrames int) *Frame {
	return &Frame{
		Kind: KindLogSpectrum, Format: f, FrameNumber: frameNumber,
		Real: real, Imag: imag, CenterFreqsHz: centerFreqsHz, ConstantQ: q, ShiftFrames: shiftFrames,
	}
}

// NewMelSpectrum builds a mel-binned spectrum; values carries one magnitude
// (or power, if filterPowers) per mel channel.
func NewMelSpectrum(f *audioformat.Format, frameNumber int64, binBoundariesHz []float64, values []float32, filterPowers bool) *Frame {
	return &Frame{
		Kind: KindMelSpectrum, Format: f, FrameNumber: frameNumber,
		Real: values, BinBoundariesHz: binBoundariesHz, FilterPowers: filterPowers,
	}
}

// NewMultiBandSpectrum builds a rectangular multi-band spectrum; values[i]
// is the magnitude of band i [boundaries[i], boundaries[i+1]).
func NewMultiBandSpectrum(f *audioformat.Format, frameNumber int64, binBoundariesHz []float64, magnitudes []float32) *Frame {
	return &Frame{
		Kind: KindMultiBandSpectrum, Format: f, FrameNumber: frameNumber,
		Real: magnitudes, BinBoundariesHz: binBoundariesHz,
	}
}

// NewInstantaneousFrequencySpectrum builds a per-bin instantaneous-frequency
// frame (Real carries Hz values) derived from two successive linear spectra
// at hop hopFrames.
func NewInstantaneousFrequencySpectrum(f *audioformat.Format, frameNumber int64, freqsHz, magnitudes []float32, hopFrames int) *Frame {
	return &Frame{
		Kind: KindInstantaneousFrequency, Format: f, FrameNumber: frameNumber,
		Real: freqsHz, Imag: magnitudes, HopFrames: hopFrames,
	}
}
