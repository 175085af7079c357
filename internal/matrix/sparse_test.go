package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse_DefaultForUnsetEntries(t *testing.T) {
	m := NewSparse(4, 4)
	assert.Zero(t, m.Get(1, 2))

	m.Default = -1
	assert.Equal(t, float32(-1), m.Get(1, 2))

	m.Set(1, 2, 7)
	assert.Equal(t, float32(7), m.Get(1, 2))
	assert.Equal(t, float32(-1), m.Get(2, 1), "sparse storage is not symmetric")
}

func TestSparse_SettingDefaultReleasesEntry(t *testing.T) {
	m := NewSparse(3, 3)
	m.Set(0, 0, 5)
	assert.Equal(t, 1, m.NNZ())

	m.Set(0, 0, 0)
	assert.Equal(t, 0, m.NNZ())
}

func TestSparse_EachVisitsOnlyStoredEntries(t *testing.T) {
	m := NewSparse(3, 3)
	m.Set(0, 1, 2)
	m.Set(2, 2, 3)

	seen := map[[2]int]float32{}
	m.Each(func(i, j int, v float32) {
		seen[[2]int{i, j}] = v
	})

	assert.Equal(t, map[[2]int]float32{{0, 1}: 2, {2, 2}: 3}, seen)
}

func TestSparse_OutOfRangeSetPanics(t *testing.T) {
	m := NewSparse(2, 2)
	assert.Panics(t, func() { m.Set(2, 0, 1) })
}

func TestBackings_RoundTripValues(t *testing.T) {
	f32 := NewF32Backing(4)
	f32.Set(1, 0.25)
	assert.Equal(t, float32(0.25), f32.Get(1))
	assert.Equal(t, 4, f32.Len())

	i32 := NewI32Backing(4)
	i32.Set(0, 42)
	assert.Equal(t, float32(42), i32.Get(0))

	sb := NewByteBacking(4, 2)
	sb.Set(2, -1.5)
	assert.InDelta(t, -1.5, sb.Get(2), 2.0/127)
	sb.Set(3, 99) // clamps to scale
	assert.InDelta(t, 2, sb.Get(3), 1e-6)

	ub := NewUByteBacking(4, 1)
	ub.Set(0, 0.5)
	assert.InDelta(t, 0.5, ub.Get(0), 1.0/255)
	ub.Set(1, -3) // clamps to zero
	assert.Zero(t, ub.Get(1))
}
