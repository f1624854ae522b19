package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorWarning = lipgloss.Color("11") // Yellow
	colorError   = lipgloss.Color("9")  // Red
	colorSuccess = lipgloss.Color("10") // Green

	warnLabel  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorLabel = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	okLabel    = lipgloss.NewStyle().Foreground(colorSuccess)
)

// isColorTerminal reports whether w is an interactive terminal that accepts
// colour. NO_COLOR and TERM=dumb disable colour.
func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// reporter prints progress to stdout and diagnostics to stderr.
type reporter struct {
	out      io.Writer
	diag     *log.Logger
	color    bool // stderr
	outColor bool // stdout
}

func newReporter(stdout, stderr io.Writer) *reporter {
	return &reporter{
		out:      stdout,
		diag:     log.New(stderr, "", 0),
		color:    isColorTerminal(stderr),
		outColor: isColorTerminal(stdout),
	}
}

func styled(enabled bool, style lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return style.Render(text)
}

func (r *reporter) infof(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// generated reports one written file.
func (r *reporter) generated(path string) {
	fmt.Fprintf(r.out, "%s %s\n", styled(r.outColor, okLabel, "Generated:"), path)
}

func (r *reporter) warnings(warnings []string) {
	for _, w := range warnings {
		r.diag.Printf("%s %s", styled(r.color, warnLabel, "WARN:"), w)
	}
}

func (r *reporter) errorf(format string, args ...any) {
	r.diag.Printf("%s %s", styled(r.color, errorLabel, "ERROR:"), fmt.Sprintf(format, args...))
}
