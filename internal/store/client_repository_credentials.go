package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
)

// localCredentialRepository stores the client session in the local SQLite
// database. The blob is sealed by the caller; this layer never sees the
// token in clear text.
type localCredentialRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &localCredentialRepository{DB: db, logger: logger}
}

func (l *localCredentialRepository) SaveCredential(ctx context.Context, sealed []byte) error {
	if _, err := l.conn(ctx).ExecContext(ctx, upsertCredential, sealed, time.Now().UTC().Format(time.RFC3339)); err != nil {
		l.logger.Err(err).Str("func", "*localCredentialRepository.SaveCredential").Msg("error saving credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (l *localCredentialRepository) LoadCredential(ctx context.Context) ([]byte, error) {
	var sealed []byte
	err := l.conn(ctx).QueryRowContext(ctx, selectCredential).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return sealed, nil
}

func (l *localCredentialRepository) ClearCredential(ctx context.Context) error {
	if _, err := l.conn(ctx).ExecContext(ctx, deleteCredential); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type localSettingsRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &localSettingsRepository{DB: db, logger: logger}
}

func (l *localSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := l.conn(ctx).QueryRowContext(ctx, selectSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return value, nil
}

func (l *localSettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := l.conn(ctx).ExecContext(ctx, upsertSetting, key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (l *localSettingsRepository) DeleteSetting(ctx context.Context, key string) error {
	if _, err := l.conn(ctx).ExecContext(ctx, deleteSetting, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
