// Package cli holds the command-line presentation layer shared by
// cmd/sndgraph: lipgloss styles and a kong help printer.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#5F5FD7")
	accentColor  = lipgloss.Color("#00AFAF")
	successColor = lipgloss.Color("#00AA00")
	errorColor   = lipgloss.Color("#D70000")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginTop(1).MarginBottom(1)
	SuccessStyle  = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	KeyStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(textColor)
)

// PrintBanner prints the program banner above kong's usage output.
func PrintBanner() {
	fmt.Println(TitleStyle.Render("sndgraph"))
	fmt.Println(SubtitleStyle.Render("offline audio feature-extraction graph engine"))
	fmt.Println()
}

// PrintVersion prints version information.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("sndgraph"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints a fatal error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintSuccess prints a success message.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints a key/value informational line.
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Println(HeaderStyle.Render(title))
}
