// Package frame implements the single frame abstraction: one struct
// with a capability record and a tagged kind, replacing the original's
// class-per-spectrum-type inheritance. Derived magnitude/power caches are
// computed lazily with single-writer initialization (sync.Once).
package frame

import (
	"math"
	"sync"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/matrix"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// Kind tags which spectral/temporal shape a Frame carries.
type Kind int

const (
	KindReal Kind = iota
	KindComplex
	KindLinearSpectrum
	KindLogSpectrum
	KindMelSpectrum
	KindMultiBandSpectrum
	KindInstantaneousFrequency
	KindMatrix
)

// zeroCacheThreshold is the longest zero vector the process-wide cache will
// retain.
const zeroCacheThreshold = 8192

var zeroCache struct {
	mu  sync.Mutex
	vec []float32
}

// zerosOfLength returns a read-only zero-filled slice of length n. Callers
// must not mutate the result. Lengths above the threshold allocate a
// fresh (still read-only-by-convention) slice instead of growing the cache.
func zerosOfLength(n int) []float32 {
	zeroCache.mu.Lock()
	defer zeroCache.mu.Unlock()
	if n > zeroCacheThreshold {
		return make([]float32, n)
	}
	if len(zeroCache.vec) < n {
		zeroCache.vec = make([]float32, n)
	}
	return zeroCache.vec[:n]
}

// Frame is the single polymorphic frame type. Fields are exported so nodes
// implementing the reuse pattern can overwrite them in place between
// calls; Reuse resets the derived-cache sync.Once fields correctly when
// doing so.
type Frame struct {
	Kind        Kind
	Format      *audioformat.Format
	FrameNumber int64

	Real []float32
	Imag []float32 // nil for a KindReal frame (logically all-zero)

	// LinearSpectrum: bin k <-> k*sr/N, N = len(Real). No extra fields.

	// LogSpectrum
	CenterFreqsHz []float64
	ConstantQ     float64
	ShiftFrames   int

	// MelSpectrum / MultiBandSpectrum
	BinBoundariesHz []float64
	FilterPowers    bool // Mel: filter bank applied to powers instead of magnitudes

	// InstantaneousFrequencySpectrum: Real carries per-bin Hz, Imag the
	// per-bin magnitudes.
	HopFrames int

	// KindMatrix
	Matrix matrix.Matrix

	magOnce sync.Once
	mag     []float32
	powOnce sync.Once
	pow     []float32
}

// Timestamp returns FrameNumber/sampleRate in seconds.
func (f *Frame) Timestamp() float64 {
	if f.Format == nil || f.Format.SampleRate == 0 {
		return 0
	}
	return float64(f.FrameNumber) / float64(f.Format.SampleRate)
}

// Imaginary returns f.Imag, or a shared zero vector of the same length as
// Real if this is a real-only frame.
func (f *Frame) Imaginary() []float32 {
	if f.Imag != nil {
		return f.Imag
	}
	return zerosOfLength(len(f.Real))
}

// Magnitude returns sqrt(re^2+im^2) per bin, computed once and cached.
func (f *Frame) Magnitude() []float32 {
	f.magOnce.Do(func() {
		im := f.Imaginary()
		f.mag = make([]float32, len(f.Real))
		for i, re := range f.Real {
			f.mag[i] = float32(math.Hypot(float64(re), float64(im[i])))
		}
	})
	return f.mag
}

// Power returns magnitude^2 per bin, computed once and cached.
func (f *Frame) Power() []float32 {
	f.powOnce.Do(func() {
		mag := f.Magnitude()
		f.pow = make([]float32, len(mag))
		for i, m := range mag {
			f.pow[i] = m * m
		}
	})
	return f.pow
}

// Validate checks the real/imag length invariant, raising an Invariant
// error rather than panicking — internal consistency violations are errors,
// not bugs a caller can recover from locally.
func (f *Frame) Validate() error {
	if f.Imag != nil && len(f.Imag) != len(f.Real) {
		return sgerr.New(sgerr.Invariant, "frame.Validate", nil)
	}
	return nil
}

// Reuse overwrites f in place with a new kind/real/imag payload, resetting
// the derived caches. This is the node-internal reuse pattern:
// children must finish using the frame before Process returns, since the
// node may call Reuse again on the very next input.
func (f *Frame) Reuse(kind Kind, frameNumber int64, real, imag []float32) {
	f.Kind = kind
	f.FrameNumber = frameNumber
	f.Real = real
	f.Imag = imag
	f.magOnce = sync.Once{}
	f.mag = nil
	f.powOnce = sync.Once{}
	f.pow = nil
}

// Clone returns a deep copy of f's sample data, safe for a node to retain
// past the call that produced it. Derived caches are not copied; they are
// cheap to recompute lazily and copying a sync.Once is unsafe.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Kind:            f.Kind,
		Format:          f.Format,
		FrameNumber:     f.FrameNumber,
		ConstantQ:       f.ConstantQ,
		ShiftFrames:     f.ShiftFrames,
		FilterPowers:    f.FilterPowers,
		HopFrames:       f.HopFrames,
		BinBoundariesHz: append([]float64(nil), f.BinBoundariesHz...),
		CenterFreqsHz:   append([]float64(nil), f.CenterFreqsHz...),
		Matrix:          f.Matrix,
	}
	c.Real = append([]float32(nil), f.Real...)
	if f.Imag != nil {
		c.Imag = append([]float32(nil), f.Imag...)
	}
	return c
}
