package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type categoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	return &categoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query, args, err := buildInsertCategoryQuery(ctx, category)
	if err != nil {
		return models.Category{}, err
	}

	created, err := scanCategory(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Category{}, translateWriteError(err, nil)
	}
	return created, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	query, args, err := buildSelectQuery(ctx, categoriesTable, categoryColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Category{}, err
	}

	category, err := scanCategory(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Category{}, translateReadError(err)
	}
	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query, args, err := buildSelectQuery(ctx, categoriesTable, categoryColumns, nil, "name", nil)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanCategory)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query, args, err := buildUpdateCategoryQuery(ctx, category)
	if err != nil {
		return models.Category{}, err
	}

	updated, err := scanCategory(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Category{}, translateWriteError(err, nil)
	}
	return updated, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, categoriesTable, id)
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
