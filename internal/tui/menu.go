package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	title string
	page  string
}

type MenuModel struct {
	items  []menuItem
	idx    int
	status string
}

// NewMenuModel builds the sign-in menu. A non-empty notice is shown above
// the choices.
func NewMenuModel(notice string) *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Sign in", page: pageLogin},
			{title: "Create account", page: pageRegister},
			{title: "Server address", page: pageServer},
		},
		status: notice,
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(statusNotice); ok {
		m.status = notice.text
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		page := m.items[m.idx].page
		return m, func() tea.Msg { return NavigateTo{Page: page} }
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	actionColWidth := lipgloss.Width("Action")
	for _, item := range m.items {
		actionColWidth = max(actionColWidth, lipgloss.Width(item.title))
	}
	const idColWidth = 4 // "<marker> <id>"

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "%-*s │ %-*s\n", idColWidth, "#", actionColWidth, "Action")
	b.WriteString(strings.Repeat("─", idColWidth))
	b.WriteString("─┼─")
	b.WriteString(strings.Repeat("─", actionColWidth))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		idCell := fmt.Sprintf("%s %d", cursor, i+1)
		fmt.Fprintf(&b, "%-*s │ %-*s\n", idColWidth, idCell, actionColWidth, item.title)
	}

	return renderPage("SORTR", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move │ v: version")
}
