package graph

import "github.com/linuxmatters/sndgraph/internal/sgerr"

// Pipeline is a linear push chain: a head node plus an ordered tail,
// verified at construction to have exactly one child per internal node.
// Joining appends a node to the tail and returns a new Pipeline
// sharing the same head, so intermediate pipeline values can be reused
// without rewiring already-connected nodes.
type Pipeline struct {
	head PushNode
	tail PushNode
}

// NewPipeline auto-connects an ordered list of push nodes into a linear
// chain and returns the resulting Pipeline. At least one node is required,
// and every node but the last must not have children yet, so that each
// internal node ends up with exactly one child; otherwise a Configuration
// error is returned and nothing is wired.
func NewPipeline(nodes ...PushNode) (*Pipeline, error) {
	if len(nodes) == 0 {
		return nil, sgerr.New(sgerr.Configuration, "graph.NewPipeline", nil)
	}
	for i := 0; i+1 < len(nodes); i++ {
		for _, ch := range nodes[i].Children() {
			if len(ch) > 0 {
				return nil, sgerr.New(sgerr.Configuration, "graph.NewPipeline", nil)
			}
		}
	}
	for i := 0; i+1 < len(nodes); i++ {
		nodes[i].AddChild(nodes[i+1])
	}
	return &Pipeline{head: nodes[0], tail: nodes[len(nodes)-1]}, nil
}

// Head returns the pipeline's first node, the one the pump merges on.
func (p *Pipeline) Head() PushNode { return p.head }

// Tail returns the pipeline's last node, the one Join appends after.
func (p *Pipeline) Tail() PushNode { return p.tail }

// Join appends node after the pipeline's current tail and returns a new
// Pipeline sharing the same head.
func (p *Pipeline) Join(node PushNode) *Pipeline {
	p.tail.AddChild(node)
	return &Pipeline{head: p.head, tail: node}
}

// Unwrap returns p's head node, the form the pump's merge logic walks.
// Pipeline wrappers are unwrapped before merging; a bare PushNode
// passed to Pump.Add is already unwrapped.
func (p *Pipeline) Unwrap() PushNode { return p.head }
