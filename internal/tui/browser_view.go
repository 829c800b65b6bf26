package tui

import (
	"fmt"
	"strings"
)

const (
	titleWidth = 32
	noteWidth  = 36
)

func (m browserModel) View() string {
	header := "SORTR · " + m.deps.session.Name()
	if m.unread > 0 {
		header += fmt.Sprintf(" · %d unread", m.unread)
	}
	if m.loading || (m.detail != nil && m.detail.loading) {
		header += "  " + m.spinner.View()
	}

	var b strings.Builder
	b.WriteString(m.breadcrumb())
	b.WriteString("\n\n")

	hotKeys := "enter: open │ esc: back │ i: details │ c: copy link │ o: open link │ r: refresh │ L: sign out │ q: quit"
	if m.detail != nil {
		b.WriteString(m.detailView())
		hotKeys = "esc: back │ c: copy link │ r: refresh │ q: quit"
	} else {
		b.WriteString(m.listView())
	}

	if m.prompt != nil {
		b.WriteString("\n")
		b.WriteString(overlayBoxStyle.Render("Open link\n\n" + m.prompt.View() + "\n\nenter: open │ esc: cancel"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage(header, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m browserModel) breadcrumb() string {
	titles := make([]string, len(m.frames))
	for i, f := range m.frames {
		titles[i] = f.title
	}
	return helpStyle.Render(strings.Join(titles, " › "))
}

func (m browserModel) listView() string {
	f := m.top()
	if !f.loaded {
		return "Loading..."
	}
	if len(f.entries) == 0 {
		return "Nothing here yet"
	}

	var b strings.Builder
	for i, e := range f.entries {
		line := fmt.Sprintf("%s %-*s %s", kindIcon(e), titleWidth, fitText(e.title, titleWidth), helpStyle.Render(fitText(e.note, noteWidth)))
		if i == f.idx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func kindIcon(e entry) string {
	switch e.kind {
	case "location":
		return "[L]"
	case "box":
		return "[B]"
	case "item":
		return "[I]"
	default:
		return "[?]"
	}
}

func (m browserModel) detailView() string {
	d := m.detail
	if d.loading {
		return "Loading " + d.ref.String() + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.title))
	b.WriteString(helpStyle.Render("  " + m.deps.links.render(d.ref)))
	b.WriteString("\n\n")

	width := 0
	for _, f := range d.fields {
		width = max(width, len(f[0]))
	}
	for _, f := range d.fields {
		fmt.Fprintf(&b, "%-*s  %s\n", width, f[0]+":", f[1])
	}

	b.WriteString("\nHistory\n")
	if len(d.history) == 0 {
		b.WriteString(helpStyle.Render("  no recorded changes"))
		b.WriteString("\n")
	}
	for _, a := range d.history {
		fmt.Fprintf(&b, "  %s  %-12s %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04"), a.Action, string(a.Changes))
	}
	return b.String()
}
