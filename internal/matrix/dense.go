package matrix

// Dense is a row-major matrix with optional zero-padding on out-of-range
// reads; out-of-range writes raise (via panic, caught by Matrix docs as an
// Invariant-class misuse) since dense storage has no silent-drop contract
// (only banded storage does).
type Dense struct {
	rows, cols int
	backing    Backing
	padReads   bool
}

// NewDense allocates a rows x cols dense matrix with an F32Backing.
func NewDense(rows, cols int) *Dense {
	return &Dense{rows: rows, cols: cols, backing: NewF32Backing(rows * cols)}
}

// NewDenseWithBacking allocates a rows x cols dense matrix over an
// already-sized backing (len(backing) must equal rows*cols).
func NewDenseWithBacking(rows, cols int, backing Backing) *Dense {
	return &Dense{rows: rows, cols: cols, backing: backing}
}

// SetZeroPadReads makes out-of-range Get calls return 0 instead of
// panicking.
func (d *Dense) SetZeroPadReads(pad bool) { d.padReads = pad }

func (d *Dense) Rows() int { return d.rows }
func (d *Dense) Cols() int { return d.cols }

func (d *Dense) inRange(i, j int) bool {
	return i >= 0 && i < d.rows && j >= 0 && j < d.cols
}

func (d *Dense) Get(i, j int) float32 {
	if !d.inRange(i, j) {
		if d.padReads {
			return 0
		}
		panic("matrix.Dense.Get: index out of range")
	}
	return d.backing.Get(i*d.cols + j)
}

func (d *Dense) Set(i, j int, v float32) {
	if !d.inRange(i, j) {
		panic("matrix.Dense.Set: index out of range")
	}
	d.backing.Set(i*d.cols+j, v)
}
