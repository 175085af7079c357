package nodes

import (
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/matrix"
	"github.com/linuxmatters/sndgraph/internal/numeric"
)

// SelfSimilarity buffers incoming feature frames and, on Flush, produces a
// distance matrix M[i][j] = d(x_i, x_j). With Bandwidth > 0 only
// entries within |i-j| <= Bandwidth/2 are computed, stored in a
// SymmetricBanded matrix for long sequences; Bandwidth == 0 stores the
// full upper triangle in a Symmetric matrix. DistanceName identifies the
// distance for structural equality, since func values aren't comparable.
type SelfSimilarity struct {
	graph.Base
	Distance     numeric.DistanceFunc
	DistanceName string
	Bandwidth    int

	buf []*frame.Frame
}

// NewSelfSimilarity builds a SelfSimilarity node using distance d (recorded
// under name for pump merging) and the given bandwidth (0 for a full dense
// upper triangle).
func NewSelfSimilarity(name string, d numeric.DistanceFunc, bandwidth int) *SelfSimilarity {
	return &SelfSimilarity{Distance: d, DistanceName: name, Bandwidth: bandwidth}
}

func (n *SelfSimilarity) Process(in *frame.Frame) error {
	n.MarkRunning()
	n.buf = append(n.buf, in.Clone())
	return nil
}

func (n *SelfSimilarity) Flush() error {
	if n.AlreadyFlushed() {
		return nil
	}
	n.MarkFlushed()

	count := len(n.buf)
	if count == 0 {
		return flushChildren(n.ChildList())
	}

	cache := numeric.NewCachedNormDistance(n.Distance)
	vectorAt := func(i int) []float32 {
		f := n.buf[i]
		if len(f.Real) > 0 {
			return f.Real
		}
		return f.Magnitude()
	}

	var m matrix.Matrix
	if n.Bandwidth <= 0 {
		dense := matrix.NewSymmetric(count)
		for i := 0; i < count; i++ {
			for j := i; j < count; j++ {
				dense.Set(i, j, float32(cache.Distance(vectorAt(i), vectorAt(j))))
			}
		}
		m = dense
	} else {
		half := n.Bandwidth / 2
		banded, err := matrix.NewSymmetricBanded(count, n.Bandwidth)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			for j := i; j <= i+half && j < count; j++ {
				banded.Set(i, j, float32(cache.Distance(vectorAt(i), vectorAt(j))))
			}
		}
		m = banded
	}

	out := frame.NewMatrix(n.buf[0].Format, n.buf[0].FrameNumber, m)
	n.SetOutput(out)
	if err := forward(n.ChildList(), out); err != nil {
		return err
	}
	return flushChildren(n.ChildList())
}

func (n *SelfSimilarity) Equal(other graph.PushNode) bool {
	o, ok := other.(*SelfSimilarity)
	return ok && o.DistanceName == n.DistanceName && o.Bandwidth == n.Bandwidth
}
