package matrix

import "github.com/linuxmatters/sndgraph/internal/sgerr"

// SymmetricBanded stores only the diagonals within [-bandwidth/2,
// +bandwidth/2] of an n x n symmetric matrix. Writes outside the band are
// silently ignored; reads outside the band return DefaultFill. This
// is the memory-efficient backing SelfSimilarity uses for long sequences
// with a bounded lookback.
type SymmetricBanded struct {
	n           int
	half        int // bandwidth/2
	backing     Backing
	DefaultFill float32
}

// NewSymmetricBanded allocates an n x n symmetric-banded matrix. bandwidth
// must be odd (an even bandwidth can't be split symmetrically around a
// diagonal) — callers get a Configuration error otherwise.
func NewSymmetricBanded(n, bandwidth int) (*SymmetricBanded, error) {
	if bandwidth%2 == 0 {
		return nil, sgerr.New(sgerr.Configuration, "matrix.NewSymmetricBanded", nil)
	}
	half := bandwidth / 2
	return &SymmetricBanded{n: n, half: half, backing: NewF32Backing(n * (half + 1))}, nil
}

// NewSymmetricBandedWithBacking is NewSymmetricBanded over a caller-supplied
// backing (len(backing) must equal n*(bandwidth/2+1)).
func NewSymmetricBandedWithBacking(n, bandwidth int, backing Backing) (*SymmetricBanded, error) {
	if bandwidth%2 == 0 {
		return nil, sgerr.New(sgerr.Configuration, "matrix.NewSymmetricBandedWithBacking", nil)
	}
	return &SymmetricBanded{n: n, half: bandwidth / 2, backing: backing}, nil
}

func (m *SymmetricBanded) Rows() int { return m.n }
func (m *SymmetricBanded) Cols() int { return m.n }

// Bandwidth returns the configured bandwidth (always odd).
func (m *SymmetricBanded) Bandwidth() int { return 2*m.half + 1 }

func (m *SymmetricBanded) inBand(i, j int) bool {
	d := i - j
	if d < 0 {
		d = -d
	}
	return d <= m.half
}

func (m *SymmetricBanded) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*(m.half+1) + (j - i)
}

func (m *SymmetricBanded) Get(i, j int) float32 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic("matrix.SymmetricBanded.Get: index out of range")
	}
	if !m.inBand(i, j) {
		return m.DefaultFill
	}
	return m.backing.Get(m.index(i, j))
}

func (m *SymmetricBanded) Set(i, j int, v float32) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic("matrix.SymmetricBanded.Set: index out of range")
	}
	if !m.inBand(i, j) {
		return // silently ignored, per contract
	}
	m.backing.Set(m.index(i, j), v)
}
