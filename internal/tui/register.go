package tui

import (
	"context"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	regUsername = iota
	regDisplayName
	regEmail
	regPassword
	regRepeat
)

// RegisterModel creates an account and signs it in.
type RegisterModel struct {
	ctx     context.Context
	session service.ClientSession

	form       form
	submitting bool
	errMsg     string
	errFields  []models.FieldError
}

func NewRegisterModel(ctx context.Context, session service.ClientSession) *RegisterModel {
	return &RegisterModel{
		ctx:     ctx,
		session: session,
		form: newForm(
			formField{label: "Username", limit: 64},
			formField{label: "Display name", limit: 128},
			formField{label: "Email", limit: 254},
			formField{label: "Password", limit: 128, secret: true},
			formField{label: "Repeat password", limit: 128, secret: true},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			req, errMsg := m.request()
			if errMsg != "" {
				m.errMsg, m.errFields = errMsg, nil
				return m, nil
			}
			m.errMsg, m.errFields = "", nil
			m.submitting = true
			return m, m.cmdRegister(req)
		}
	}

	return m, m.form.update(msg)
}

// request builds the body from the form. Only the checks the server cannot
// do for us happen here.
func (m *RegisterModel) request() (models.RegisterRequest, string) {
	req := models.RegisterRequest{
		Username:    m.form.value(regUsername),
		DisplayName: m.form.value(regDisplayName),
		Password:    m.form.rawValue(regPassword),
	}
	if email := m.form.value(regEmail); email != "" {
		req.Email = &email
	}

	switch {
	case req.Username == "" || req.Password == "":
		return req, "Username and password are required"
	case req.Password != m.form.rawValue(regRepeat):
		return req, "Passwords do not match"
	}
	return req, ""
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}
	b.WriteString(resultError(m.errMsg, m.errFields))

	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return authResultMsg{res: session.Register(ctx, req)}
	}
}
