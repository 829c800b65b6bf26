package tui

import (
	"context"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

// browserDeps is everything the browser needs from the client runtime.
type browserDeps struct {
	repo       service.ClientRepository
	session    models.Session
	events     <-chan models.SessionEvent
	links      linkRenderer
	copy       func(string) error
	clearCache func()
}

type detailView struct {
	ref     models.ResourceRef
	title   string
	fields  [][2]string
	history []models.Activity
	loading bool
}

// browserModel walks locations → boxes → items. Every level is a frame on a
// stack; opening an item (or pressing i on a container) shows its detail.
type browserModel struct {
	ctx  context.Context
	deps browserDeps

	frames  []frame
	detail  *detailView
	prompt  *textinput.Model
	spinner spinner.Model
	loading bool
	unread  int
	status  string
	errMsg  string

	outcome Outcome
}

func newBrowserModel(ctx context.Context, deps browserDeps) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return browserModel{
		ctx:     ctx,
		deps:    deps,
		frames:  []frame{{kind: frameRoot, title: "Locations"}},
		spinner: s,
		loading: true,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadFrame(m.ctx, m.deps.repo, m.top()),
		loadUnreadCount(m.ctx, m.deps.repo),
		waitForSessionEvent(m.deps.events),
	)
}

func (m browserModel) top() frame {
	return m.frames[len(m.frames)-1]
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionEventMsg:
		if !msg.open {
			return m, nil
		}
		if msg.event == models.SessionExpired {
			return m.expire()
		}
		return m, waitForSessionEvent(m.deps.events)

	case frameLoadedMsg:
		return m.applyFrame(msg)

	case detailLoadedMsg:
		return m.applyDetail(msg)

	case unreadCountMsg:
		if msg.ok {
			m.unread = msg.count
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		*m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) expire() (tea.Model, tea.Cmd) {
	m.outcome = OutcomeExpired
	m.errMsg = msgSessionExpired
	return m, tea.Quit
}

// fail shows the failure inline, or ends browsing when the session is gone.
func (m browserModel) fail(o *outcome) (tea.Model, tea.Cmd) {
	if o.sessionExpired {
		return m.expire()
	}
	m.errMsg = o.message
	return m, nil
}

func (m browserModel) applyFrame(msg frameLoadedMsg) (tea.Model, tea.Cmd) {
	for i := len(m.frames) - 1; i >= 0; i-- {
		if m.frames[i].key() != msg.key {
			continue
		}
		if i == len(m.frames)-1 {
			m.loading = false
		}
		if msg.failure != nil {
			return m.fail(msg.failure)
		}

		f := &m.frames[i]
		f.entries = msg.entries
		f.loaded = true
		f.idx = min(max(f.idx, 0), max(len(f.entries)-1, 0))
		return m, nil
	}
	return m, nil
}

func (m browserModel) applyDetail(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil || m.detail.ref != msg.ref {
		return m, nil
	}
	if msg.failure != nil {
		m.detail = nil
		return m.fail(msg.failure)
	}

	m.detail = &detailView{
		ref:     msg.ref,
		title:   msg.title,
		fields:  msg.fields,
		history: msg.history,
	}
	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.outcome = OutcomeQuit
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		m.outcome = OutcomeLogout
		return m, tea.Quit
	case key.Matches(msg, keys.openURL):
		in := textinput.New()
		in.Placeholder = "sortr://item/1"
		in.Width = 48
		in.Focus()
		m.prompt = &in
		return m, textinput.Blink
	}

	m.status, m.errMsg = "", ""

	if m.detail != nil {
		switch {
		case key.Matches(msg, keys.back):
			m.detail = nil
		case key.Matches(msg, keys.copy):
			m.copyLink(m.detail.ref)
		case key.Matches(msg, keys.refresh):
			m.deps.clearCache()
			return m.openDetail(m.detail.ref)
		}
		return m, nil
	}

	f := &m.frames[len(m.frames)-1]
	switch {
	case key.Matches(msg, keys.up):
		if f.idx > 0 {
			f.idx--
		}
	case key.Matches(msg, keys.down):
		if f.idx < len(f.entries)-1 {
			f.idx++
		}
	case key.Matches(msg, keys.open):
		if e, ok := f.selected(); ok {
			return m.open(e)
		}
	case key.Matches(msg, keys.back):
		if len(m.frames) > 1 {
			m.frames = m.frames[:len(m.frames)-1]
			m.loading = false
		}
	case key.Matches(msg, keys.info):
		if e, ok := f.selected(); ok {
			if ref, ok := e.ref(); ok {
				return m.openDetail(ref)
			}
		}
	case key.Matches(msg, keys.copy):
		if e, ok := f.selected(); ok {
			if ref, ok := e.ref(); ok {
				m.copyLink(ref)
			}
		}
	case key.Matches(msg, keys.refresh):
		m.deps.clearCache()
		m.loading = true
		return m, tea.Batch(loadFrame(m.ctx, m.deps.repo, m.top()), loadUnreadCount(m.ctx, m.deps.repo))
	}
	return m, nil
}

func (m browserModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		return m, nil
	case "enter":
		raw := m.prompt.Value()
		m.prompt = nil
		ref, err := models.ParseDeepLink(raw)
		if err != nil {
			m.errMsg = "Not a Sortr link: " + raw
			return m, nil
		}
		return m.openDetail(ref)
	}

	var cmd tea.Cmd
	*m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// open drills into a container or shows an item.
func (m browserModel) open(e entry) (tea.Model, tea.Cmd) {
	var next frame
	switch e.kind {
	case models.ResourceLocation:
		next = frame{kind: frameLocation, id: e.id, title: e.title}
	case models.ResourceBox:
		next = frame{kind: frameBox, id: e.id, title: e.title}
	case models.ResourceItem:
		return m.openDetail(models.ResourceRef{Kind: e.kind, ID: e.id})
	default:
		next = frame{kind: frameOrphans, title: e.title}
	}

	m.frames = append(m.frames, next)
	m.loading = true
	return m, loadFrame(m.ctx, m.deps.repo, next)
}

func (m browserModel) openDetail(ref models.ResourceRef) (tea.Model, tea.Cmd) {
	m.detail = &detailView{ref: ref, loading: true}
	return m, loadDetail(m.ctx, m.deps.repo, ref)
}

func (m *browserModel) copyLink(ref models.ResourceRef) {
	link := m.deps.links.render(ref)
	if err := m.deps.copy(link); err != nil {
		m.errMsg = "Could not copy the link: " + err.Error()
		return
	}
	m.status = "Copied " + link
}
