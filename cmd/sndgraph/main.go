// Command sndgraph runs one or more WAV files through a fixed
// mono-downmix -> sliding-window -> FFT -> mel-spectrum graph and prints
// each run's node outputs once the batch completes.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/linuxmatters/sndgraph/internal/audioformat"
	"github.com/linuxmatters/sndgraph/internal/cli"
	"github.com/linuxmatters/sndgraph/internal/graph"
	"github.com/linuxmatters/sndgraph/internal/logging"
	"github.com/linuxmatters/sndgraph/internal/nodes"
	"github.com/linuxmatters/sndgraph/internal/pump"
	"github.com/linuxmatters/sndgraph/internal/ui"
)

var version = "dev"

// CLI is a flat flags-plus-positional-files command: no subcommands, one
// batch of inputs processed through the same fixed graph.
type CLI struct {
	Version      bool     `help:"Print version and exit." short:"V"`
	Verbose      bool     `help:"Enable verbose (caller+timestamp) logging." short:"v"`
	WindowLength int      `help:"Sliding window length, in samples." default:"1024"`
	HopLength    int      `help:"Sliding window hop, in samples." default:"512"`
	MelLower     float64  `help:"Mel filter bank lower bound, in Hz." default:"20"`
	MelUpper     float64  `help:"Mel filter bank upper bound, in Hz." default:"8000"`
	MelChannels  int      `help:"Number of mel filter-bank channels." default:"40"`
	Files        []string `arg:"" optional:"" type:"existingfile" help:"Input WAV files."`
}

func main() {
	var cliArgs CLI
	kong.Parse(&cliArgs,
		kong.Name("sndgraph"),
		kong.Description("offline audio feature-extraction graph engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		return
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError("no input files given")
		os.Exit(1)
	}

	level := log.InfoLevel
	if cliArgs.Verbose {
		level = log.DebugLevel
	}
	logger := logging.New(os.Stderr, level, cliArgs.Verbose)

	model := ui.New(cliArgs.Files)
	program := tea.NewProgram(model, tea.WithAltScreen())

	reports := make([]string, len(cliArgs.Files))
	done := make(chan struct{})
	go func() {
		for i, path := range cliArgs.Files {
			report, err := runOne(logger, path, cliArgs)
			reports[i] = report
			program.Send(ui.SourceDone{Path: path, Err: err})
			if err != nil {
				logger.Error("run failed", "path", path, "err", err)
			}
		}
		close(done)
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	<-done

	for _, r := range reports {
		fmt.Print(r)
	}
}

// runOne builds the fixed extraction graph, pumps path through it, and
// returns the resulting node table rendered as a report. The alt-screen
// progress view owns stdout while the batch runs, so reports are collected
// here and printed by main only after the program exits.
func runOne(logger *log.Logger, path string, args CLI) (string, error) {
	src, err := audioformat.OpenWAV(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	downmix := nodes.NewMonoDownmix()
	window, err := nodes.NewSlidingWindow(args.WindowLength, args.HopLength)
	if err != nil {
		return "", err
	}
	fft := nodes.NewFFT(args.WindowLength)
	mel, err := nodes.NewMel(args.MelLower, args.MelUpper, args.MelChannels, true)
	if err != nil {
		return "", err
	}
	mel.SetID("mel")
	fft.SetID("fft")

	pipeline, err := graph.NewPipeline(downmix, window, fft, mel)
	if err != nil {
		return "", err
	}

	p := pump.New(logger)
	p.SetSource(src)
	if err := p.Add(pipeline); err != nil {
		return "", err
	}

	results, err := p.Run()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintln(&b, cli.HeaderStyle.Render(path))
	b.WriteString(logging.ResultTable(results))
	b.WriteString(p.Describe())
	return b.String(), nil
}
