// Package numeric holds the window, filter, distance, aggregate and
// peak-finding primitives the rest of the engine is built from.
package numeric

import "math"

// WindowKind selects a window shape used by FIR design, constant-Q kernel
// rows and the ApplyWindow helpers.
type WindowKind int

const (
	WindowRectangular WindowKind = iota
	WindowHann
	WindowHamming
	WindowWelch
	WindowTriangle
	WindowCosine
	WindowBlackman
)

// WindowValue returns the multiplier for tap j of an n-tap window of the
// given kind, j in [0, n).
func WindowValue(kind WindowKind, n, j int) float64 {
	if n <= 1 {
		return 1
	}
	nf, jf := float64(n), float64(j)
	center := 0.5 * (nf - 1)
	switch kind {
	case WindowHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*jf/(nf-1))
	case WindowHamming:
		return 0.53836 - 0.46164*math.Cos(2*math.Pi*jf/(nf-1))
	case WindowWelch:
		x := (jf - center) / center
		return 1 - x*x
	case WindowTriangle:
		return 1 - math.Abs((jf-center)/center)
	case WindowCosine:
		return math.Cos((jf - center) / nf * math.Pi)
	case WindowBlackman:
		return 0.42659 - 0.49656*math.Cos(2*math.Pi*jf/(nf-1)) + 0.076849*math.Cos(4*math.Pi*jf/(nf-1))
	case WindowRectangular:
		fallthrough
	default:
		return 1
	}
}

// ApplyWindow multiplies dst[j] by WindowValue(kind, len(dst), j) in place.
func ApplyWindow(kind WindowKind, dst []float64) {
	n := len(dst)
	for j := range dst {
		dst[j] *= WindowValue(kind, n, j)
	}
}

// ApplyWindow32 is the float32 counterpart used by frame-carrying nodes.
func ApplyWindow32(kind WindowKind, dst []float32) {
	n := len(dst)
	for j := range dst {
		dst[j] *= float32(WindowValue(kind, n, j))
	}
}
