package pump

import (
	"fmt"
	"strings"

	"github.com/linuxmatters/sndgraph/internal/graph"
)

// Describe returns an ASCII dump of the merged graph, root-first, DFS,
// left-to-right across split channels.
func (p *Pump) Describe() string {
	var b strings.Builder
	for _, root := range p.roots {
		describeNode(&b, root, 0)
	}
	return b.String()
}

func describeNode(b *strings.Builder, n graph.PushNode, depth int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), identityKey(n))
	for ch, channelChildren := range n.Children() {
		for _, c := range channelChildren {
			if len(n.Children()) > 1 {
				fmt.Fprintf(b, "%s[channel %d]\n", strings.Repeat("  ", depth+1), ch)
				describeNode(b, c, depth+2)
				continue
			}
			describeNode(b, c, depth+1)
		}
	}
}
