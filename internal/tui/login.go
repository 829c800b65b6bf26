// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the sign-in screen. On success it emits a signedInMsg which
// [RootModel] turns into the end of the sign-in program.
type LoginModel struct {
	ctx     context.Context
	session service.ClientSession

	form       form
	submitting bool
	errMsg     string
	errFields  []models.FieldError
}

func NewLoginModel(ctx context.Context, session service.ClientSession) *LoginModel {
	return &LoginModel{
		ctx:     ctx,
		session: session,
		form: newForm(
			formField{label: "Username", limit: 64},
			formField{label: "Password", limit: 128, secret: true},
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles:
//   - authResultMsg: finishes on success, shows the message otherwise
//   - esc: back to the menu
//   - tab / shift+tab: focus
//   - enter: submit
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.submitting = false
		if !result.res.OK {
			m.errMsg, m.errFields = result.res.Message, result.res.Fields
			return m, nil
		}
		m.form.reset()
		return m, func() tea.Msg { return signedInMsg{session: result.res.Data} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg, m.errFields = "", nil
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "tab", "down":
			m.form.focusNext()
			return m, nil
		case "shift+tab", "up":
			m.form.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			creds := models.Credentials{Username: m.form.value(0), Password: m.form.rawValue(1)}
			if creds.Username == "" || creds.Password == "" {
				m.errMsg, m.errFields = "Username and password are required", nil
				return m, nil
			}

			m.errMsg, m.errFields = "", nil
			m.submitting = true
			return m, m.cmdLogin(creds)
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}
	b.WriteString(resultError(m.errMsg, m.errFields))

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return authResultMsg{res: session.Login(ctx, creds)}
	}
}
