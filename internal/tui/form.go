package tui

import (
	"fmt"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is one labelled input of a form page.
type formField struct {
	label  string
	secret bool
	limit  int
}

// form is the input block shared by the sign-in pages.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...formField) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = strings.ToLower(field.label)
		in.Width = 40
		if field.limit > 0 {
			in.CharLimit = field.limit
		}
		if field.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels[i] = field.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// rawValue keeps surrounding spaces, which matter for passwords.
func (f *form) rawValue(i int) string {
	return f.inputs[i].Value()
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// view renders the fields as a two-column table.
func (f *form) view() string {
	width := 0
	for _, label := range f.labels {
		width = max(width, len(label))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s │ Value\n", width, "Field")
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 44))
	b.WriteString("\n")
	for i, label := range f.labels {
		fmt.Fprintf(&b, "%-*s │ [%s]\n", width, label, f.inputs[i].View())
	}
	return b.String()
}

// resultError renders a failed Result: the message and any rejected fields.
func resultError(message string, fields []models.FieldError) string {
	if message == "" && len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("Error: " + message))
	b.WriteString("\n")
	for _, fe := range fields {
		fmt.Fprintf(&b, "  %s: %s\n", fe.Field, fe.Message)
	}
	return b.String()
}
