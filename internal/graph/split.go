package graph

import "github.com/linuxmatters/sndgraph/internal/frame"

// SplitBase is the shared bookkeeping for a push node with a fixed channel
// count C: children are registered per channel rather than in one
// flat list. Concrete splits (interleaved channel split, band split) embed
// this instead of Base. Split nodes always report Equal == false (their
// Equal method, not this type, enforces that) — splits are never merged
// because their children are channel-partitioned with heterogeneous
// semantics.
type SplitBase struct {
	state    State
	id       string
	channels [][]PushNode
	flushed  bool
}

// NewSplitBase allocates a SplitBase with the given fixed channel count.
func NewSplitBase(channelCount int) *SplitBase {
	return &SplitBase{channels: make([][]PushNode, channelCount)}
}

func (s *SplitBase) State() State     { return s.state }
func (s *SplitBase) ID() string       { return s.id }
func (s *SplitBase) SetID(id string)  { s.id = id }
func (s *SplitBase) Output() *frame.Frame { return nil } // a split has C outputs, one per channel; no single Output

// Children returns the per-channel child lists.
func (s *SplitBase) Children() [][]PushNode { return s.channels }

// AddChild registers child on channel 0, to satisfy the PushNode interface
// for callers that don't need a specific channel; prefer AddChildOnChannel.
func (s *SplitBase) AddChild(child PushNode) { s.AddChildOnChannel(0, child) }

// AddChildOnChannel registers child on the given channel index.
func (s *SplitBase) AddChildOnChannel(channel int, child PushNode) {
	s.channels[channel] = append(s.channels[channel], child)
}

// ChannelCount returns the fixed channel count C this split was built with.
func (s *SplitBase) ChannelCount() int { return len(s.channels) }

func (s *SplitBase) MarkRunning() {
	if s.state == Idle {
		s.state = Running
	}
}

func (s *SplitBase) AlreadyFlushed() bool { return s.flushed }
func (s *SplitBase) MarkFlushed() {
	s.flushed = true
	s.state = Flushed
}
