package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCategorySvc(t *testing.T) (CategoryService, *mock.MockCategoryRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	categories := mock.NewMockCategoryRepository(ctrl)
	return NewCategoryService(categories, logger.Nop()), categories
}

func TestCategoryService_Create_TrimsName(t *testing.T) {
	svc, categories := newTestCategorySvc(t)
	ctx := context.Background()

	categories.EXPECT().CreateCategory(ctx, models.Category{Name: "Tools"}).Return(models.Category{ID: 1, Name: "Tools"}, nil)

	c, err := svc.Create(ctx, models.CategoryInput{Name: "  Tools "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
}

func TestCategoryService_Create_Duplicate(t *testing.T) {
	svc, categories := newTestCategorySvc(t)

	categories.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(models.Category{}, store.ErrAlreadyExists)

	_, err := svc.Create(context.Background(), models.CategoryInput{Name: "Tools"})
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), `"Tools"`)
}

func TestCategoryService_Update_Unknown(t *testing.T) {
	svc, categories := newTestCategorySvc(t)

	categories.EXPECT().UpdateCategory(gomock.Any(), models.Category{ID: 8, Name: "Cables"}).Return(models.Category{}, store.ErrNotFound)

	_, err := svc.Update(context.Background(), 8, models.CategoryInput{Name: "Cables"})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "category", nf.Kind)
	assert.Equal(t, int64(8), nf.ID)
}

func TestCategoryService_Delete_ReturnsDeleted(t *testing.T) {
	svc, categories := newTestCategorySvc(t)
	ctx := context.Background()

	gomock.InOrder(
		categories.EXPECT().GetCategory(ctx, int64(2)).Return(models.Category{ID: 2, Name: "Paint"}, nil),
		categories.EXPECT().DeleteCategory(ctx, int64(2)).Return(nil),
	)

	c, err := svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Paint", c.Name)
}

func TestCategoryService_Delete_Unknown(t *testing.T) {
	svc, categories := newTestCategorySvc(t)

	categories.EXPECT().GetCategory(gomock.Any(), int64(3)).Return(models.Category{}, store.ErrNotFound)

	_, err := svc.Delete(context.Background(), 3)

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}
