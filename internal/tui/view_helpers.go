package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 72

var (
	pageBodyStyle = lipgloss.NewStyle().PaddingLeft(2)
	dividerStyle  = lipgloss.NewStyle().Faint(true)
)

// renderPage lays out a screen: title, divider, body, divider and the hot
// keys of the page. An empty body renders as a dash.
func renderPage(title, body, hotKeys string) string {
	divider := pageBodyStyle.Render(dividerStyle.Render(strings.Repeat("─", pageWidth-2)))
	if strings.TrimSpace(body) == "" {
		body = "-"
	}

	footer := "ctrl+c: quit"
	if strings.TrimSpace(hotKeys) != "" {
		footer = hotKeys + "\nctrl+c: quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		divider,
		"",
		pageBodyStyle.Render(body),
		"",
		divider,
		pageBodyStyle.Render(helpStyle.Render(footer)),
	)
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// fitText shortens v to at most width runes, marking the cut with "...".
func fitText(v string, width int) string {
	r := []rune(v)
	if width <= 0 || len(r) <= width {
		return v
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
