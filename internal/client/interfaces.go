// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/Comraich/sortr-sub001/internal/tui"
	"github.com/Comraich/sortr-sub001/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until the user quits or
	// ctx is cancelled.
	Run(ctx context.Context) error
}

// UI is the interactive part of the client. [tui.TUI] implements it.
type UI interface {
	// SignIn blocks until the user is authenticated. It returns
	// [tui.ErrUserQuit] when the user gives up.
	SignIn(ctx context.Context, notice string) (models.Session, error)
	// Browse blocks until the user leaves the browser and reports why.
	Browse(ctx context.Context, session models.Session) (tui.Outcome, error)
}
