package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/testlens/core/pkg/domain"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	idleStyle    = lipgloss.NewStyle().Faint(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Faint(true)
)

// messageColumn is where failure messages start, label width permitting.
const messageColumn = 48

func renderTree(w io.Writer, root *domain.TreeItem) {
	for _, item := range root.Items {
		renderItem(w, item, 0)
	}
}

func renderItem(w io.Writer, item *domain.TreeItem, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + outcomeGlyph(item.Result) + " " + item.Name

	if item.Result != nil && item.Result.Message != "" {
		message := firstLine(item.Result.Message)
		if pad := messageColumn - runewidth.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		} else {
			line += "  "
		}
		line += messageStyle.Render(message)
	}

	fmt.Fprintln(w, line)
	for _, child := range item.Items {
		renderItem(w, child, depth+1)
	}
}

func outcomeGlyph(outcome *domain.Outcome) string {
	if outcome == nil {
		return idleStyle.Render("·")
	}
	switch outcome.State {
	case domain.TestStatePassed:
		return passStyle.Render("✓")
	case domain.TestStateFailed:
		return failStyle.Render("✗")
	case domain.TestStatePending:
		return pendingStyle.Render("○")
	default:
		return idleStyle.Render("·")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
