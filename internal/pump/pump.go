// Package pump owns the source and the set of merged graph roots, and
// drives frames through them. It is the only place in the engine
// that touches more than one thread: Cancel is safe from any goroutine,
// everything else is single-threaded.
package pump

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/frame"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// Addable is either a bare graph.PushNode or a *graph.Pipeline; Pump.Add
// unwraps either form before merging.
type Addable interface{}

// Pump owns the signal source and the merged set of root nodes, preserving
// insertion order.
type Pump struct {
	source audioformat.Source
	roots  []graph.PushNode
	cancel atomic.Bool
	log    *log.Logger
}

// New builds a Pump with the given logger (nil uses a default, non-verbose
// logger).
func New(logger *log.Logger) *Pump {
	if logger == nil {
		logger = log.New(nil)
		logger.SetLevel(log.WarnLevel)
	}
	return &Pump{log: logger}
}

// SetSource attaches the upstream signal source.
func (p *Pump) SetSource(src audioformat.Source) { p.source = src }

// Add decomposes n (a Pipeline or a bare node) into its head, then merges it
// into the existing root set by structural equality, or appends it as a new
// root if no existing root matches.
func (p *Pump) Add(n Addable) error {
	head, err := unwrap(n)
	if err != nil {
		return err
	}

	for _, root := range p.roots {
		if root.Equal(head) {
			p.log.Debug("merging into existing root", "root", identityKey(root))
			for _, channelChildren := range head.Children() {
				for _, child := range channelChildren {
					mergeChain(root, child)
				}
			}
			return nil
		}
	}

	p.log.Debug("adding new root", "root", identityKey(head))
	p.roots = append(p.roots, head)
	return nil
}

func unwrap(n Addable) (graph.PushNode, error) {
	switch v := n.(type) {
	case *graph.Pipeline:
		return v.Unwrap(), nil
	case graph.PushNode:
		return v, nil
	default:
		return nil, sgerr.New(sgerr.Configuration, "pump.Add", fmt.Errorf("unsupported node type %T", n))
	}
}

// mergeChain attaches newNode under existing. If existing already has a
// structurally-equal child at this depth, newNode's own children are merged
// recursively under that child; otherwise newNode is attached whole, with
// its subtree. Split nodes always fail Equal, so a
// split subtree is always attached fresh, never merged into.
func mergeChain(existing, newNode graph.PushNode) {
	for _, ec := range existing.Children()[0] {
		if ec.Equal(newNode) {
			for _, channelChildren := range newNode.Children() {
				for _, nc := range channelChildren {
					mergeChain(ec, nc)
				}
			}
			return
		}
	}
	existing.AddChild(newNode)
}

// Cancel requests cooperative abort; safe to call from any goroutine. The
// pump observes it between source reads and between root invocations.
func (p *Pump) Cancel() { p.cancel.Store(true) }

// Run resets the source, then reads and processes frames until exhaustion
// or cancellation, flushes every root once, then walks the graph depth-first
// (each root, then its children channel by channel, left to right) and
// collects (id, output) pairs into the returned map. The map itself keeps no
// order, and a later node with the same id overwrites an earlier one. A cancelled run
// returns (nil, sgerr.ErrCancelled) without flushing.
func (p *Pump) Run() (map[string]*frame.Frame, error) {
	p.cancel.Store(false)
	if p.source == nil {
		return nil, sgerr.New(sgerr.Configuration, "pump.Run", fmt.Errorf("no source set"))
	}
	if err := p.source.Reset(); err != nil {
		return nil, err
	}

	for {
		if p.cancel.Load() {
			return nil, sgerr.ErrCancelled
		}

		format, idx, samples, err := p.source.Read()
		if err == sgerr.ErrExhausted {
			break
		}
		if err != nil {
			return nil, err
		}

		in := frame.NewReal(format, idx, samples)
		for _, root := range p.roots {
			if p.cancel.Load() {
				return nil, sgerr.ErrCancelled
			}
			if err := root.Process(in); err != nil {
				return nil, err
			}
		}
	}

	for _, root := range p.roots {
		if err := root.Flush(); err != nil {
			return nil, err
		}
	}

	result := make(map[string]*frame.Frame)
	for _, root := range p.roots {
		collect(root, result)
	}
	return result, nil
}

func collect(n graph.PushNode, out map[string]*frame.Frame) {
	out[identityKey(n)] = n.Output()
	for _, channelChildren := range n.Children() {
		for _, c := range channelChildren {
			collect(c, out)
		}
	}
}

// identityKey returns n.ID() if set, otherwise n's string form.
func identityKey(n graph.PushNode) string {
	if id := n.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("%v", n)
}
