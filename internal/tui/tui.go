// Package tui is the terminal client of Sortr. It signs the user in and
// then browses the location, box and item hierarchy through the client data
// layer. Deep links to any entry can be copied to the clipboard.
package tui

import (
	"context"
	"errors"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

// Outcome tells the client runtime why browsing ended.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeLogout
	OutcomeExpired
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	links     linkRenderer
	copy      func(string) error
	logger    *logger.Logger
}

func New(services *service.ClientServices, cfg config.ClientApp, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		buildInfo: buildInfo,
		links:     linkRenderer{baseURL: cfg.PublicBaseURL},
		copy:      clipboard.WriteAll,
		logger:    logger,
	}
}

// SignIn runs the sign-in screens until the user is authenticated or quits.
// notice, when set, is shown on the menu (e.g. after a session expired).
func (t *TUI) SignIn(ctx context.Context, notice string) (models.Session, error) {
	session := t.services.Session
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(notice),
		pageLogin:    NewLoginModel(ctx, session),
		pageRegister: NewRegisterModel(ctx, session),
		pageServer:   NewServerModel(ctx, session),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.Session{}, err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.session.Valid() {
		return models.Session{}, ErrUserQuit
	}

	t.logger.Info().Int64("user_id", result.session.UserID).Msg("signed in")
	return result.session, nil
}

// Browse runs the inventory browser for the signed-in user.
func (t *TUI) Browse(ctx context.Context, session models.Session) (Outcome, error) {
	events, unsubscribe := t.services.Session.Subscribe()
	defer unsubscribe()

	model := newBrowserModel(ctx, browserDeps{
		repo:       t.services.Repository,
		session:    session,
		events:     events,
		links:      t.links,
		copy:       t.copy,
		clearCache: t.services.Cache.Clear,
	})

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return OutcomeQuit, err
	}

	result, ok := finalModel.(browserModel)
	if !ok {
		return OutcomeQuit, tea.ErrProgramKilled
	}
	return result.outcome, nil
}
