package nodes

import (
	"fmt"

	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
)

func errWrongKind(got, want frame.Kind) error {
	return fmt.Errorf("expected frame kind %v, got %v", want, got)
}

func errChannelCount(got, want int) error {
	return fmt.Errorf("expected %d channels, got %d", want, got)
}

func errLength(got, want int) error {
	return fmt.Errorf("expected length %d, got %d", want, got)
}

// forward calls Process on every child in children with out, stopping and
// returning the first error.
func forward(children []graph.PushNode, out *frame.Frame) error {
	for _, c := range children {
		if err := c.Process(out); err != nil {
			return err
		}
	}
	return nil
}

// flushChildren calls Flush on every child in children, stopping and
// returning the first error.
func flushChildren(children []graph.PushNode) error {
	for _, c := range children {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	return nil
}
