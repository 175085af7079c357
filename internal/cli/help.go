package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
)

type argument struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

// StyledHelpPrinter builds a kong.HelpPrinter closure that renders usage
// through the package's lipgloss styles instead of kong's plain columns.
// The returned closure does the rendering per --help invocation; neither
// the options given here nor the closure's own options argument change
// the output.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(TitleStyle.Render("sndgraph"))
		sb.WriteString("\n")
		if ctx.Model.Help != "" {
			sb.WriteString(SubtitleStyle.Render(ctx.Model.Help))
			sb.WriteString("\n")
		}

		sb.WriteString(HeaderStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)
		sb.WriteString(" [flags]")
		args := getArguments(ctx)
		for _, a := range args {
			sb.WriteString(" ")
			sb.WriteString(a.name)
		}
		sb.WriteString("\n")

		if len(args) > 0 {
			sb.WriteString(HeaderStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, a := range args {
				fmt.Fprintf(&sb, "  %s  %s\n", KeyStyle.Render(a.name), a.help)
			}
		}

		flags := getFlags(ctx)
		sb.WriteString(HeaderStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, f := range flags {
			fmt.Fprintf(&sb, "  %s  %s", KeyStyle.Render(f.flags), f.help)
			if f.defaultVal != "" {
				fmt.Fprintf(&sb, " %s", SubtitleStyle.Render("(default: "+f.defaultVal+")"))
			}
			sb.WriteString("\n")
		}

		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

func getArguments(ctx *kong.Context) []argument {
	var args []argument
	for _, pos := range ctx.Model.Positional {
		args = append(args, argument{name: pos.Name, help: pos.Help})
	}
	return args
}

func getFlags(ctx *kong.Context) []flag {
	flags := []flag{{flags: "-h, --help", help: "Show context-sensitive help."}}
	for _, f := range ctx.Model.Flags {
		if f.Name == "help" {
			continue
		}
		names := "--" + f.Name
		if f.Short != 0 {
			names = fmt.Sprintf("-%c, %s", f.Short, names)
		}
		def := ""
		if f.Default != "" {
			def = f.Default
		}
		flags = append(flags, flag{flags: names, help: f.Help, defaultVal: def})
	}
	return flags
}
