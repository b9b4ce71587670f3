package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}).Bold(true)
	gutterStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"})
	caretStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"})
)

// Diagnostic is any error the printer accepts. Only errors that also
// implement Located get a caret snippet; others print as a plain
// one-line message.
type Diagnostic interface {
	error
}

// Located is implemented by every error type in this module that
// carries a GlobalSpan, letting the printer render a caret under the
// offending source text.
type Located interface {
	error
	Location() GlobalSpan
}

// Print renders one diagnostic to w: the file:line:col header, the
// offending source line, and a caret range beneath it. Colors are
// emitted only when w is a terminal with color support (detected via
// golang.org/x/term), so redirected output stays plain text.
func Print(w io.Writer, source string, err error) {
	loc, ok := err.(Located)
	if !ok {
		fmt.Fprintf(w, "error: %s\n", err)
		return
	}

	colorize := isColorTerminal(w)
	gs := loc.Location()
	line, col := LineCol(source, gs.Span.Start)
	lineSpan := lineSpanAt(source, gs.Span.Start)
	lineText := source[lineSpan.Start:lineSpan.End]

	header := fmt.Sprintf("%s:%d:%d: %s", gs.File, line, col, err)
	if colorize {
		header = locationStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	gutter := fmt.Sprintf("%5d | ", line)
	if colorize {
		gutter = gutterStyle.Render(gutter)
	}
	fmt.Fprintf(w, "%s%s\n", gutter, lineText)

	startCol := gs.Span.Start - lineSpan.Start
	endCol := gs.Span.End - lineSpan.Start
	if endCol <= startCol {
		endCol = startCol + 1
	}
	pad := strings.Repeat(" ", len(fmt.Sprintf("%5d | ", line))+startCol)
	carets := strings.Repeat("^", endCol-startCol)
	if colorize {
		carets = caretStyle.Render(carets)
	}
	fmt.Fprintf(w, "%s%s\n", pad, carets)
}

// PrintExpectedTokens appends a parse error's "expected tokens: ..."
// footer beneath whatever Print already rendered.
func PrintExpectedTokens(w io.Writer, expected []string) {
	footer := fmt.Sprintf("expected tokens: %s", strings.Join(expected, ", "))
	if isColorTerminal(w) {
		footer = footerStyle.Render(footer)
	}
	fmt.Fprintln(w, footer)
}

func lineSpanAt(source string, offset int) Span {
	start := LineStart(source, offset)
	end := start
	for end < len(source) && source[end] != '\n' {
		end++
	}
	return Span{Start: start, End: end}
}

type fder interface {
	Fd() uintptr
}

func isColorTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
