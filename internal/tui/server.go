package tui

import (
	"context"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ServerModel edits the server address. An empty value returns to the
// configured default.
type ServerModel struct {
	ctx     context.Context
	session service.ClientSession

	form   form
	errMsg string
}

func NewServerModel(ctx context.Context, session service.ClientSession) *ServerModel {
	return &ServerModel{
		ctx:     ctx,
		session: session,
		form:    newForm(formField{label: "Server URL", limit: 2048}),
	}
}

// Init prefills the input with the address in use.
func (m *ServerModel) Init() tea.Cmd {
	m.form.inputs[0].SetValue(m.session.ServerURL())
	m.form.inputs[0].CursorEnd()
	return textinput.Blink
}

func (m *ServerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(serverURLResultMsg); ok {
		if !result.res.OK {
			m.errMsg = result.res.Message
			return m, nil
		}
		m.errMsg = ""
		notice := statusNotice{text: "Server set to " + result.res.Data}
		return m, func() tea.Msg { return NavigateTo{Page: pageMenu, Payload: notice} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "enter":
			raw := m.form.value(0)
			ctx, session := m.ctx, m.session
			return m, func() tea.Msg {
				return serverURLResultMsg{res: session.SetServerURL(ctx, raw)}
			}
		}
	}

	return m, m.form.update(msg)
}

func (m *ServerModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())
	b.WriteString(resultError(m.errMsg, nil))

	return renderPage("SERVER ADDRESS", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: save (empty resets)")
}
