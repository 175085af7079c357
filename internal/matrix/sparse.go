package matrix

// key packs a (row, col) coordinate into one map key.
type key struct{ i, j int }

// Sparse is a keyed matrix with a default fill value for unset entries,
// used by the constant-Q kernel (most entries are thresholded to zero and
// never stored).
type Sparse struct {
	rows, cols int
	entries    map[key]float32
	Default    float32
}

// NewSparse allocates an empty rows x cols sparse matrix.
func NewSparse(rows, cols int) *Sparse {
	return &Sparse{rows: rows, cols: cols, entries: make(map[key]float32)}
}

func (s *Sparse) Rows() int { return s.rows }
func (s *Sparse) Cols() int { return s.cols }

func (s *Sparse) Get(i, j int) float32 {
	if v, ok := s.entries[key{i, j}]; ok {
		return v
	}
	return s.Default
}

func (s *Sparse) Set(i, j int, v float32) {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic("matrix.Sparse.Set: index out of range")
	}
	if v == s.Default {
		delete(s.entries, key{i, j})
		return
	}
	s.entries[key{i, j}] = v
}

// NNZ returns the number of explicitly-stored (non-default) entries.
func (s *Sparse) NNZ() int { return len(s.entries) }

// Each calls fn once per stored entry, in unspecified order.
func (s *Sparse) Each(fn func(i, j int, v float32)) {
	for k, v := range s.entries {
		fn(k.i, k.j, v)
	}
}
