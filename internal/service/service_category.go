package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

type categoryService struct {
	categories store.CategoryRepository
	logger     *logger.Logger
}

func NewCategoryService(categories store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{categories: categories, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	c, err := s.categories.CreateCategory(ctx, models.Category{Name: name})
	if err != nil {
		return models.Category{}, duplicateCategory(err, name)
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *categoryService) Update(ctx context.Context, id int64, in models.CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(in.Name)
	c, err := s.categories.UpdateCategory(ctx, models.Category{ID: id, Name: name})
	if err != nil {
		return models.Category{}, notFoundOr(duplicateCategory(err, name), "category", id)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) (models.Category, error) {
	c, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return models.Category{}, notFoundOr(err, "category", id)
	}
	if err = s.categories.DeleteCategory(ctx, id); err != nil {
		return models.Category{}, notFoundOr(err, "category", id)
	}
	return c, nil
}

func duplicateCategory(err error, name string) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("%w: category %q", ErrDuplicateName, name)
	}
	return err
}
