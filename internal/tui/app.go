package tui

import (
	"github.com/Comraich/sortr-sub001/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageServer   = "server"
)

// RootModel routes between the sign-in pages. The program ends when a page
// reports signedInMsg or the user presses ctrl+c; "v" on the menu toggles
// the build information.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	session    models.Session
	quitByUser bool

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
}

func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{pages: pages, current: pages[startPage], buildInfo: buildInfo}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := r.globalKey(msg); handled {
			return r, cmd
		}
	case NavigateTo:
		return r.navigate(msg)
	case signedInMsg:
		r.session = msg.session
		return r, tea.Quit
	}

	if r.current == nil {
		return r, nil
	}
	var cmd tea.Cmd
	r.current, cmd = r.current.Update(msg)
	return r, cmd
}

// globalKey handles the keys every page shares. While the build information
// is shown it swallows all other keys.
func (r *RootModel) globalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		r.quitByUser = true
		return true, tea.Quit
	case "v":
		if _, onMenu := r.current.(*MenuModel); onMenu {
			r.showBuildInfo = !r.showBuildInfo
			return true, nil
		}
	case "esc":
		if r.showBuildInfo {
			r.showBuildInfo = false
			return true, nil
		}
	}
	return r.showBuildInfo, nil
}

func (r RootModel) navigate(msg NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[msg.Page]
	if !ok {
		return r, nil
	}
	r.current, r.showBuildInfo = next, false

	if msg.Payload == nil {
		return r, next.Init()
	}
	payload := msg.Payload
	return r, tea.Batch(next.Init(), func() tea.Msg { return payload })
}

func (r RootModel) View() string {
	switch {
	case r.showBuildInfo:
		return renderBuildInfoWindow(r.buildInfo)
	case r.current == nil:
		return renderPage("SORTR", "", "")
	}
	return r.current.View()
}
