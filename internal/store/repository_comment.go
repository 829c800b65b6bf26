package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type commentRepository struct {
	*DB
	logger *logger.Logger
}

func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	return &commentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	query, args, err := buildInsertCommentQuery(ctx, comment)
	if err != nil {
		return models.Comment{}, err
	}

	created, err := scanComment(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.CreateComment").Stringer("resource", comment.ResourceRef).Msg("error inserting comment")
		return models.Comment{}, translateWriteError(err, nil)
	}
	return created, nil
}

func (r *commentRepository) GetComment(ctx context.Context, id int64) (models.Comment, error) {
	query, args, err := buildSelectQuery(ctx, commentsTable, commentColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := scanComment(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Comment{}, translateReadError(err)
	}
	return comment, nil
}

// ListComments returns the comments on a resource, oldest first.
func (r *commentRepository) ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) ([]models.Comment, int, error) {
	where := resourceCondition(ref)

	query, args, err := buildSelectQuery(ctx, commentsTable, commentColumns, where, "created_at, id", &page)
	if err != nil {
		return nil, 0, err
	}
	comments, err := queryList(ctx, r.conn(ctx), query, args, scanComment)
	if err != nil {
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, commentsTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, commentsTable, id)
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
