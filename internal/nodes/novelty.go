package nodes

import (
	"math"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/numeric"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// GaussianCheckerboardKernel builds the classic Foote novelty kernel: a
// size x size Gaussian tapering from the center, sign-flipped into
// quadrants so that a self-similarity region straddling a boundary scores
// high. If normalize, the kernel is scaled so the sum of absolute entries
// is 1.
func GaussianCheckerboardKernel(size int, sigma float64, normalize bool) [][]float64 {
	k := make([][]float64, size)
	center := float64(size-1) / 2
	var absSum float64
	for i := 0; i < size; i++ {
		k[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			di, dj := float64(i)-center, float64(j)-center
			g := math.Exp(-(di*di + dj*dj) / (2 * sigma * sigma))
			sign := 1.0
			if (di < 0) != (dj < 0) {
				sign = -1.0
			}
			k[i][j] = sign * g
			absSum += math.Abs(k[i][j])
		}
	}
	if normalize && absSum > 0 {
		for i := range k {
			for j := range k[i] {
				k[i][j] /= absSum
			}
		}
	}
	return k
}

// Novelty maintains a rolling K x K self-similarity matrix (K = len(Kernel))
// over the most recent K feature frames, shifting one row/column per new
// frame and scoring the checkerboard kernel against it, one score per
// advance. While the kernel overhangs the stream's edges the matrix's
// unfilled region is zero, so the edge scores are zero-padded; with ZeroPad
// false those edge scores are suppressed instead: the first K/2 outputs
// are skipped and the last K/2 are held back and dropped at flush.
type Novelty struct {
	graph.Base
	Distance     numeric.DistanceFunc
	DistanceName string
	Kernel       [][]float64
	ZeroPad      bool

	k       int
	buf     [][]float32 // ring of up to k feature vectors, oldest first
	m       [][]float64 // k x k rolling similarity matrix
	advance int64
	held    []float64 // scores delayed by k/2 so the trailing edge can be dropped
	fn      int64
	started bool
	format  *audioformat.Format
}

// NewNovelty builds a Novelty node using distance d (recorded under name
// for pump merging, since func values aren't comparable) and the given
// checkerboard kernel (see GaussianCheckerboardKernel).
func NewNovelty(name string, d numeric.DistanceFunc, kernel [][]float64, zeroPad bool) (*Novelty, error) {
	k := len(kernel)
	if k == 0 {
		return nil, sgerr.New(sgerr.Configuration, "NewNovelty", nil)
	}
	m := make([][]float64, k)
	for i := range m {
		m[i] = make([]float64, k)
	}
	return &Novelty{Distance: d, DistanceName: name, Kernel: kernel, ZeroPad: zeroPad, k: k, m: m}, nil
}

func (n *Novelty) Process(in *frame.Frame) error {
	n.MarkRunning()
	if !n.started {
		n.fn = in.FrameNumber
		n.format = in.Format
		n.started = true
	}
	v := in.Real
	if len(v) == 0 {
		v = in.Magnitude()
	}

	if len(n.buf) < n.k {
		// Filling: this vector's distances land in the top-left region;
		// the untouched remainder stays zero, which is the zero padding.
		for i, u := range n.buf {
			d := n.Distance(u, v)
			n.m[i][len(n.buf)] = d
			n.m[len(n.buf)][i] = d
		}
		n.buf = append(n.buf, v)
	} else {
		// Shift the matrix one row/column toward the origin, dropping the
		// oldest vector, then fill in the new last row/column.
		for i := 0; i < n.k-1; i++ {
			copy(n.m[i][:n.k-1], n.m[i+1][1:n.k])
		}
		n.buf = append(n.buf[1:], v)
		for i := 0; i < n.k-1; i++ {
			d := n.Distance(n.buf[i], v)
			n.m[i][n.k-1] = d
			n.m[n.k-1][i] = d
		}
		n.m[n.k-1][n.k-1] = n.Distance(v, v)
	}
	n.advance++

	if n.ZeroPad {
		return n.emit(n.score())
	}
	if n.advance <= int64(n.k/2) {
		return nil
	}
	// Delay by k/2 so Flush can drop the trailing edge scores unemitted.
	n.held = append(n.held, n.score())
	if len(n.held) <= n.k/2 {
		return nil
	}
	s := n.held[0]
	n.held = n.held[1:]
	return n.emit(s)
}

func (n *Novelty) score() float64 {
	var sum float64
	for i := 0; i < n.k; i++ {
		for j := 0; j < n.k; j++ {
			sum += n.Kernel[i][j] * n.m[i][j]
		}
	}
	return sum
}

func (n *Novelty) emit(v float64) error {
	out := frame.NewReal(n.format, n.fn, []float32{float32(v)})
	n.fn++
	n.SetOutput(out)
	return forward(n.ChildList(), out)
}

func (n *Novelty) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()
	if n.ZeroPad {
		for i := 0; i < n.k/2; i++ {
			n.shiftZero()
			if err := n.emit(n.score()); err != nil {
				return err
			}
		}
	}
	// Without zero padding the delayed scores past the stream's reach are
	// the trailing edge; they are dropped, not emitted.
	n.held = nil
	return flushChildren(n.ChildList())
}

// shiftZero advances the rolling matrix past the end of the stream: the
// oldest row/column drops out and the incoming one is all zero.
func (n *Novelty) shiftZero() {
	for i := 0; i < n.k-1; i++ {
		copy(n.m[i][:n.k-1], n.m[i+1][1:n.k])
	}
	for i := 0; i < n.k; i++ {
		n.m[i][n.k-1] = 0
		n.m[n.k-1][i] = 0
	}
}

func (n *Novelty) Equal(other graph.PushNode) bool {
	o, ok := other.(*Novelty)
	return ok && o.k == n.k && o.ZeroPad == n.ZeroPad && o.DistanceName == n.DistanceName
}
