package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/sndgraph/internal/frame"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

// ResultTable renders a pump's flushed result map as a column-aligned
// table of (id, kind, sample count) rows.
func ResultTable(results map[string]*frame.Frame) string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	idWidth, kindWidth := len("NODE"), len("KIND")
	for _, id := range ids {
		if len(id) > idWidth {
			idWidth = len(id)
		}
		if k := kindName(results[id]); len(k) > kindWidth {
			kindWidth = len(k)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		headerStyle.Render(pad("NODE", idWidth)),
		headerStyle.Render(pad("KIND", kindWidth)),
		headerStyle.Render("SAMPLES"))
	for _, id := range ids {
		f := results[id]
		fmt.Fprintf(&b, "%s  %s  %d\n",
			idStyle.Render(pad(id, idWidth)),
			pad(kindName(f), kindWidth),
			sampleCount(f))
	}
	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func kindName(f *frame.Frame) string {
	if f == nil {
		return "<nil>"
	}
	switch f.Kind {
	case frame.KindReal:
		return "real"
	case frame.KindComplex:
		return "complex"
	case frame.KindLinearSpectrum:
		return "linear-spectrum"
	case frame.KindLogSpectrum:
		return "log-spectrum"
	case frame.KindMelSpectrum:
		return "mel-spectrum"
	case frame.KindMultiBandSpectrum:
		return "multiband-spectrum"
	case frame.KindInstantaneousFrequency:
		return "instantaneous-frequency"
	case frame.KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

func sampleCount(f *frame.Frame) int {
	if f == nil {
		return 0
	}
	if f.Matrix != nil {
		return f.Matrix.Rows() * f.Matrix.Cols()
	}
	return len(f.Real)
}
