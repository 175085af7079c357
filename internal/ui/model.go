// Package ui renders batch-run progress for cmd/sndgraph with
// github.com/charmbracelet/bubbletea: one status line per input, advanced
// by SourceDone messages from the batch goroutine.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SourceStatus is one input source's progress state.
type SourceStatus int

const (
	Pending SourceStatus = iota
	Running
	Done
	Failed
)

// SourceDone reports that path finished processing, successfully or not.
type SourceDone struct {
	Path string
	Err  error
}

// Model tracks a batch of sources being pumped through the graph, one at a
// time, by a separate batch goroutine; SourceDone messages advance it.
type Model struct {
	paths   []string
	status  map[string]SourceStatus
	errs    map[string]error
	current int
}

// New builds a Model for the given input paths, with the first marked
// Running.
func New(paths []string) Model {
	status := make(map[string]SourceStatus, len(paths))
	for i, p := range paths {
		if i == 0 {
			status[p] = Running
		} else {
			status[p] = Pending
		}
	}
	return Model{paths: paths, status: status, errs: map[string]error{}}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SourceDone:
		if msg.Err != nil {
			m.status[msg.Path] = Failed
			m.errs[msg.Path] = msg.Err
		} else {
			m.status[msg.Path] = Done
		}
		m.current++
		if m.current < len(m.paths) {
			m.status[m.paths[m.current]] = Running
		} else {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

func (m Model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processing %d source(s)\n", len(m.paths))
	for _, p := range m.paths {
		switch m.status[p] {
		case Done:
			fmt.Fprintf(&b, "%s %s\n", doneStyle.Render("done"), p)
		case Running:
			fmt.Fprintf(&b, "%s %s\n", runningStyle.Render("..."), p)
		case Failed:
			fmt.Fprintf(&b, "%s %s: %v\n", failedStyle.Render("fail"), p, m.errs[p])
		default:
			fmt.Fprintf(&b, "%s %s\n", pendingStyle.Render("wait"), p)
		}
	}
	return b.String()
}
