package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/tui"
	"github.com/Comraich/sortr-sub001/internal/workers"
	"github.com/Comraich/sortr-sub001/models"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

type App struct {
	session service.ClientSession
	ui      UI
	workers *workers.Workers
	logger  *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, background *workers.Workers, logger *logger.Logger) *App {
	return &App{
		session: services.Session,
		ui:      ui,
		workers: background,
		logger:  logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.workers.Start(ctx)
	defer a.workers.Stop()

	session, notice, ok := a.restore(ctx)
	for {
		if !ok {
			var err error
			session, err = a.ui.SignIn(ctx, notice)
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
		}

		outcome, err := a.ui.Browse(ctx, session)
		if err != nil {
			return fmt.Errorf("browse: %w", err)
		}

		ok, notice = false, ""
		switch outcome {
		case tui.OutcomeLogout:
			if res := a.session.Logout(ctx); !res.OK {
				a.logger.Warn().Str("message", res.Message).Msg("logout did not complete")
			}
			a.logger.Info().Int64("user_id", session.UserID).Msg("signed out")
		case tui.OutcomeExpired:
			notice = msgSessionExpired
			a.logger.Info().Int64("user_id", session.UserID).Msg("session expired")
		default:
			return nil
		}
	}
}

// restore resumes the saved session. When there is none, the message of the
// failed attempt (if any) is shown on the sign-in menu.
func (a *App) restore(ctx context.Context) (models.Session, string, bool) {
	res := a.session.Restore(ctx)
	if res.OK {
		a.logger.Info().Int64("user_id", res.Data.UserID).Msg("session restored")
		return res.Data, "", true
	}
	return models.Session{}, res.Message, false
}
