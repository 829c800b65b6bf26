package store

import (
	"context"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
)

// ClientStorages groups the repositories of the terminal client's local
// SQLite database.
type ClientStorages struct {
	Credentials CredentialRepository
	Settings    SettingsRepository

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file named in
// cfg.DSN, applies the client schema and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Credentials: NewLocalCredentialRepository(db, logger),
		Settings:    NewLocalSettingsRepository(db, logger),
		db:          db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
