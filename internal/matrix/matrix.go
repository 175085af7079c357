// Package matrix implements the dense, symmetric, symmetric-banded and
// sparse matrix shapes, behind one interface and four
// implementations. Dense, Symmetric and SymmetricBanded store their values
// in an interchangeable backing (f32/i32/byte-normalized) to trade
// precision for memory — the dominant concern for long self-similarity
// matrices; Sparse keeps its non-default entries in a map.
package matrix

// Matrix is the shape-agnostic read/write contract every backing satisfies.
type Matrix interface {
	Rows() int
	Cols() int
	Get(i, j int) float32
	Set(i, j int, v float32)
}

// Backing abstracts the underlying storage of a single linear buffer of
// values, letting Dense/Symmetric/SymmetricBanded share their indexing
// logic across float32, int32 and byte-normalized representations.
type Backing interface {
	Len() int
	Get(i int) float32
	Set(i int, v float32)
}

// F32Backing stores values as float32, full precision.
type F32Backing []float32

func NewF32Backing(n int) F32Backing        { return make(F32Backing, n) }
func (b F32Backing) Len() int               { return len(b) }
func (b F32Backing) Get(i int) float32      { return b[i] }
func (b F32Backing) Set(i int, v float32)   { b[i] = v }

// I32Backing stores values as int32 counts/fixed-point values, losing
// fractional precision but halving memory versus float64 and matching
// float32 footprint while being friendlier to exact-integer use cases.
type I32Backing []int32

func NewI32Backing(n int) I32Backing      { return make(I32Backing, n) }
func (b I32Backing) Len() int             { return len(b) }
func (b I32Backing) Get(i int) float32    { return float32(b[i]) }
func (b I32Backing) Set(i int, v float32) { b[i] = int32(v) }

// ByteBacking stores values as signed bytes normalized to [-1, 1], the
// most compact backing, intended for self-similarity distances known to
// fall in a bounded range.
type ByteBacking struct {
	Data  []int8
	Scale float32 // value = Data[i] / 127 * Scale
}

func NewByteBacking(n int, scale float32) *ByteBacking {
	return &ByteBacking{Data: make([]int8, n), Scale: scale}
}
func (b *ByteBacking) Len() int { return len(b.Data) }
func (b *ByteBacking) Get(i int) float32 {
	return float32(b.Data[i]) / 127 * b.Scale
}
func (b *ByteBacking) Set(i int, v float32) {
	x := v / b.Scale * 127
	if x > 127 {
		x = 127
	} else if x < -127 {
		x = -127
	}
	b.Data[i] = int8(x)
}

// UByteBacking stores values as unsigned bytes normalized to [0, 1],
// appropriate for magnitude-only data such as cosine distances.
type UByteBacking struct {
	Data  []uint8
	Scale float32
}

func NewUByteBacking(n int, scale float32) *UByteBacking {
	return &UByteBacking{Data: make([]uint8, n), Scale: scale}
}
func (b *UByteBacking) Len() int { return len(b.Data) }
func (b *UByteBacking) Get(i int) float32 {
	return float32(b.Data[i]) / 255 * b.Scale
}
func (b *UByteBacking) Set(i int, v float32) {
	x := v / b.Scale * 255
	if x > 255 {
		x = 255
	} else if x < 0 {
		x = 0
	}
	b.Data[i] = uint8(x)
}
