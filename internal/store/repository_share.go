package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type shareRepository struct {
	*DB
	logger *logger.Logger
}

func NewShareRepository(db *DB, logger *logger.Logger) ShareRepository {
	return &shareRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateShare inserts a share. Sharing the same resource with the same
// user twice maps to [ErrAlreadyExists].
func (r *shareRepository) CreateShare(ctx context.Context, share models.Share) (models.Share, error) {
	query, args, err := buildInsertShareQuery(ctx, share)
	if err != nil {
		return models.Share{}, err
	}

	created, err := scanShare(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*shareRepository.CreateShare").Stringer("resource", share.ResourceRef).Msg("error inserting share")
		return models.Share{}, translateWriteError(err, nil)
	}
	return created, nil
}

func (r *shareRepository) GetShare(ctx context.Context, id int64) (models.Share, error) {
	query, args, err := buildSelectQuery(ctx, sharesTable, shareColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Share{}, err
	}

	share, err := scanShare(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Share{}, translateReadError(err)
	}
	return share, nil
}

func (r *shareRepository) ListReceivedShares(ctx context.Context, userID int64, page models.Page) ([]models.Share, int, error) {
	return r.list(ctx, sq.Eq{"user_id": userID}, page)
}

func (r *shareRepository) ListSentShares(ctx context.Context, userID int64, page models.Page) ([]models.Share, int, error) {
	return r.list(ctx, sq.Eq{"shared_by_user_id": userID}, page)
}

func (r *shareRepository) list(ctx context.Context, where sq.Sqlizer, page models.Page) ([]models.Share, int, error) {
	query, args, err := buildSelectQuery(ctx, sharesTable, shareColumns, where, "created_at DESC, id DESC", &page)
	if err != nil {
		return nil, 0, err
	}
	shares, err := queryList(ctx, r.conn(ctx), query, args, scanShare)
	if err != nil {
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, sharesTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return shares, total, nil
}

func (r *shareRepository) ListResourceParticipants(ctx context.Context, ref models.ResourceRef) ([]int64, error) {
	return queryList(ctx, r.conn(ctx), listResourceParticipants, []any{ref.Kind, ref.ID}, func(row rowScanner) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	})
}

func (r *shareRepository) DeleteShare(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, sharesTable, id)
	if err != nil {
		return err
	}

	n, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		return translateDeleteError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
