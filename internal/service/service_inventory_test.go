package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// passThroughTx runs the transaction body directly.
func passThroughTx(ctrl *gomock.Controller) *mock.MockTransactor {
	tx := mock.NewMockTransactor(ctrl)
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	return tx
}

func ptr[T any](v T) *T {
	return &v
}

func requireFieldError(t *testing.T, err error, field, rule string) {
	t.Helper()
	var verr *validators.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	for _, f := range verr.Fields {
		if f.Field == field && f.Rule == rule {
			return
		}
	}
	t.Fatalf("no %s violation on %s in %+v", rule, field, verr.Fields)
}

// ── Locations ──

func newTestLocationSvc(t *testing.T) (LocationService, *mock.MockLocationRepository, *mock.MockBoxRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	locations := mock.NewMockLocationRepository(ctrl)
	boxes := mock.NewMockBoxRepository(ctrl)
	return NewLocationService(passThroughTx(ctrl), locations, boxes, logger.Nop()), locations, boxes
}

func TestLocationService_Create_MissingParent(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(12)).Return(models.Location{}, store.ErrNotFound)

	_, err := svc.Create(ctx, models.LocationInput{Name: ptr("Shelf"), ParentID: models.SomeID(12)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "location 12 not found", err.Error())
}

func TestLocationService_Create_DuplicateName(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().CreateLocation(ctx, models.Location{Name: "Garage"}).Return(models.Location{}, store.ErrAlreadyExists)

	_, err := svc.Create(ctx, models.LocationInput{Name: ptr("  Garage ")})

	assert.True(t, errors.Is(err, ErrDuplicateName))
}

func TestLocationService_Update_RejectsCycle(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	// 1 <- 2 <- 3; making 3 the parent of 1 closes a loop.
	all := []models.Location{
		{ID: 1, Name: "House"},
		{ID: 2, Name: "Garage", ParentID: ptr(int64(1))},
		{ID: 3, Name: "Shelf", ParentID: ptr(int64(2))},
	}
	gomock.InOrder(
		locations.EXPECT().GetLocation(ctx, int64(1)).Return(all[0], nil),
		locations.EXPECT().LockLocationTree(ctx).Return(nil),
		locations.EXPECT().ListAllLocations(ctx).Return(all, nil),
	)

	_, err := svc.Update(ctx, 1, models.LocationInput{ParentID: models.SomeID(3)})

	requireFieldError(t, err, "parentId", "no_cycle")
}

func TestLocationService_Update_MoveLocksTreeBeforeReading(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	all := []models.Location{
		{ID: 1, Name: "House"},
		{ID: 2, Name: "Garage"},
	}
	gomock.InOrder(
		locations.EXPECT().GetLocation(ctx, int64(2)).Return(all[1], nil),
		locations.EXPECT().LockLocationTree(ctx).Return(nil),
		locations.EXPECT().ListAllLocations(ctx).Return(all, nil),
		locations.EXPECT().UpdateLocation(ctx, models.Location{ID: 2, Name: "Garage", ParentID: ptr(int64(1))}).
			Return(models.Location{ID: 2, Name: "Garage", ParentID: ptr(int64(1))}, nil),
	)

	got, err := svc.Update(ctx, 2, models.LocationInput{ParentID: models.SomeID(1)})

	require.NoError(t, err)
	assert.True(t, got.Changes.Only("parentId"))
}

func TestLocationService_Update_LockFailureAborts(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()
	lockErr := errors.New("canceling statement due to lock timeout")

	locations.EXPECT().GetLocation(ctx, int64(2)).Return(models.Location{ID: 2, Name: "Garage"}, nil)
	locations.EXPECT().LockLocationTree(ctx).Return(lockErr)

	_, err := svc.Update(ctx, 2, models.LocationInput{ParentID: models.SomeID(1)})

	assert.ErrorIs(t, err, lockErr)
}

func TestLocationService_Update_RejectsSelfParent(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(4)).Return(models.Location{ID: 4, Name: "Attic"}, nil)

	_, err := svc.Update(ctx, 4, models.LocationInput{ParentID: models.SomeID(4)})

	requireFieldError(t, err, "parentId", "no_cycle")
}

func TestLocationService_Update_MissingParent(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(1)).Return(models.Location{ID: 1, Name: "House"}, nil)
	locations.EXPECT().LockLocationTree(ctx).Return(nil)
	locations.EXPECT().ListAllLocations(ctx).Return([]models.Location{{ID: 1, Name: "House"}}, nil)

	_, err := svc.Update(ctx, 1, models.LocationInput{ParentID: models.SomeID(99)})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "location", nf.Kind)
	assert.Equal(t, int64(99), nf.ID)
}

func TestLocationService_Update_ReportsChanges(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	before := models.Location{ID: 2, Name: "Garage", ParentID: ptr(int64(1))}
	locations.EXPECT().GetLocation(ctx, int64(2)).Return(before, nil)
	locations.EXPECT().UpdateLocation(ctx, models.Location{ID: 2, Name: "Garage"}).
		Return(models.Location{ID: 2, Name: "Garage"}, nil)

	got, err := svc.Update(ctx, 2, models.LocationInput{ParentID: models.NullID()})

	require.NoError(t, err)
	assert.Nil(t, got.After.ParentID)
	assert.True(t, got.Changes.Only("parentId"))
}

func TestLocationService_Update_NoChangesSkipsWrite(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(2)).Return(models.Location{ID: 2, Name: "Garage"}, nil)

	got, err := svc.Update(ctx, 2, models.LocationInput{Name: ptr("Garage")})

	require.NoError(t, err)
	assert.Empty(t, got.Changes)
}

func TestLocationService_Replace_AbsentParentMakesRoot(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(2)).Return(models.Location{ID: 2, Name: "Garage", ParentID: ptr(int64(1))}, nil)
	locations.EXPECT().UpdateLocation(ctx, models.Location{ID: 2, Name: "Shed"}).Return(models.Location{ID: 2, Name: "Shed"}, nil)

	got, err := svc.Replace(ctx, 2, models.LocationInput{Name: ptr("Shed")})

	require.NoError(t, err)
	assert.Len(t, got.Changes, 2)
}

func TestLocationService_Delete_WithBoxesConflicts(t *testing.T) {
	svc, locations, boxes := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(1)).Return(models.Location{ID: 1, Name: "Garage"}, nil)
	boxes.EXPECT().ListBoxes(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.BoxFilter) ([]models.Box, int, error) {
			require.NotNil(t, f.LocationID)
			assert.Equal(t, int64(1), *f.LocationID)
			return []models.Box{{ID: 5}}, 3, nil
		})

	_, err := svc.Delete(ctx, 1)

	assert.True(t, errors.Is(err, ErrLocationHasBoxes))
}

func TestLocationService_Delete_Empty(t *testing.T) {
	svc, locations, boxes := newTestLocationSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		locations.EXPECT().GetLocation(ctx, int64(1)).Return(models.Location{ID: 1, Name: "Garage"}, nil),
		boxes.EXPECT().ListBoxes(ctx, gomock.Any()).Return(nil, 0, nil),
		locations.EXPECT().DeleteLocation(ctx, int64(1)).Return(nil),
	)

	got, err := svc.Delete(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Garage", got.Name)
}

func TestLocationService_Delete_RaceWithNewBox(t *testing.T) {
	svc, locations, boxes := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(1)).Return(models.Location{ID: 1}, nil)
	boxes.EXPECT().ListBoxes(ctx, gomock.Any()).Return(nil, 0, nil)
	locations.EXPECT().DeleteLocation(ctx, int64(1)).Return(store.ErrHasDependents)

	_, err := svc.Delete(ctx, 1)

	assert.True(t, errors.Is(err, ErrLocationHasBoxes))
}

func TestLocationService_Tree(t *testing.T) {
	svc, locations, boxes := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().ListAllLocations(ctx).Return([]models.Location{
		{ID: 1, Name: "House"},
		{ID: 2, Name: "Garage", ParentID: ptr(int64(1))},
	}, nil)
	boxes.EXPECT().CountBoxesByLocation(ctx).Return(map[int64]int{2: 4}, nil)

	tree, err := svc.Tree(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, tree.RootIDs)
	assert.Equal(t, []int64{2}, tree.Nodes[1].ChildIDs)
	assert.Equal(t, 4, tree.Nodes[2].BoxCount)
}

func TestLocationService_Children_UnknownParent(t *testing.T) {
	svc, locations, _ := newTestLocationSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(7)).Return(models.Location{}, store.ErrNotFound)

	_, err := svc.Children(ctx, 7)

	assert.True(t, errors.Is(err, ErrNotFound))
}

// ── Boxes ──

func newTestBoxSvc(t *testing.T) (BoxService, *mock.MockBoxRepository, *mock.MockLocationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	boxes := mock.NewMockBoxRepository(ctrl)
	locations := mock.NewMockLocationRepository(ctrl)
	return NewBoxService(passThroughTx(ctrl), boxes, locations, logger.Nop()), boxes, locations
}

func TestBoxService_Create_MissingLocationNamesTarget(t *testing.T) {
	svc, _, locations := newTestBoxSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(12)).Return(models.Location{}, store.ErrNotFound)

	_, err := svc.Create(ctx, models.BoxInput{Name: ptr("Box A"), LocationID: ptr(int64(12))})

	require.Error(t, err)
	assert.Equal(t, "location 12 not found", err.Error())
}

func TestBoxService_Create_LocationVanishesBeforeInsert(t *testing.T) {
	svc, boxes, locations := newTestBoxSvc(t)
	ctx := context.Background()

	locations.EXPECT().GetLocation(ctx, int64(3)).Return(models.Location{ID: 3}, nil)
	boxes.EXPECT().CreateBox(ctx, gomock.Any()).Return(models.Box{}, store.ErrReferenceNotFound)

	_, err := svc.Create(ctx, models.BoxInput{Name: ptr("Box A"), LocationID: ptr(int64(3))})

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "location 3")
}

func TestBoxService_Update_MoveRecordsLocationChange(t *testing.T) {
	svc, boxes, locations := newTestBoxSvc(t)
	ctx := context.Background()

	before := models.Box{ID: 9, Name: "Box A", LocationID: 1}
	boxes.EXPECT().GetBox(ctx, int64(9)).Return(before, nil)
	locations.EXPECT().GetLocation(ctx, int64(2)).Return(models.Location{ID: 2}, nil)
	boxes.EXPECT().UpdateBox(ctx, models.Box{ID: 9, Name: "Box A", LocationID: 2}).
		Return(models.Box{ID: 9, Name: "Box A", LocationID: 2}, nil)

	got, err := svc.Update(ctx, 9, models.BoxInput{LocationID: ptr(int64(2))})

	require.NoError(t, err)
	assert.True(t, got.Changes.Only("locationId"))
	assert.Equal(t, models.FieldChange{From: int64(1), To: int64(2)}, got.Changes["locationId"])
}

func TestBoxService_Delete_OrphansItemsInTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	boxes := mock.NewMockBoxRepository(ctrl)
	tx := mock.NewMockTransactor(ctrl)
	svc := NewBoxService(tx, boxes, mock.NewMockLocationRepository(ctrl), logger.Nop())
	ctx := context.Background()

	inTx := false
	tx.EXPECT().WithinTx(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			inTx = true
			defer func() { inTx = false }()
			return fn(ctx)
		})
	boxes.EXPECT().GetBox(ctx, int64(9)).Return(models.Box{ID: 9, Name: "Box A"}, nil)
	boxes.EXPECT().DeleteBox(ctx, int64(9)).
		DoAndReturn(func(context.Context, int64) (int64, error) {
			assert.True(t, inTx, "DeleteBox must run inside the transaction")
			return 2, nil
		})

	got, err := svc.Delete(ctx, 9)

	require.NoError(t, err)
	assert.Equal(t, "Box A", got.Name)
}

func TestBoxService_Delete_Unknown(t *testing.T) {
	svc, boxes, _ := newTestBoxSvc(t)
	ctx := context.Background()

	boxes.EXPECT().GetBox(ctx, int64(9)).Return(models.Box{}, store.ErrNotFound)

	_, err := svc.Delete(ctx, 9)

	assert.Equal(t, "box 9 not found", err.Error())
}

// ── Items ──

func newTestItemSvc(t *testing.T) (ItemService, *mock.MockItemRepository, *mock.MockBoxRepository, *mock.MockImageStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	boxes := mock.NewMockBoxRepository(ctrl)
	images := mock.NewMockImageStorage(ctrl)
	return NewItemService(items, boxes, images, logger.Nop()), items, boxes, images
}

func TestItemService_Create_DefaultsQuantity(t *testing.T) {
	svc, items, _, _ := newTestItemSvc(t)
	ctx := context.Background()

	items.EXPECT().CreateItem(ctx, models.Item{Name: "Drill", Quantity: 1}).
		Return(models.Item{ID: 1, Name: "Drill", Quantity: 1}, nil)

	got, err := svc.Create(ctx, models.ItemInput{Name: ptr("Drill")})

	require.NoError(t, err)
	assert.True(t, got.Orphaned())
}

func TestItemService_Create_MissingBox(t *testing.T) {
	svc, _, boxes, _ := newTestItemSvc(t)
	ctx := context.Background()

	boxes.EXPECT().GetBox(ctx, int64(4)).Return(models.Box{}, store.ErrNotFound)

	_, err := svc.Create(ctx, models.ItemInput{Name: ptr("Drill"), BoxID: models.SomeID(4)})

	assert.Equal(t, "box 4 not found", err.Error())
}

func TestItemService_Update_BoxIDRoundTrip(t *testing.T) {
	svc, items, boxes, _ := newTestItemSvc(t)
	ctx := context.Background()

	orphan := models.Item{ID: 1, Name: "Drill", Quantity: 1}
	boxed := orphan
	boxed.BoxID = ptr(int64(5))

	gomock.InOrder(
		items.EXPECT().GetItem(ctx, int64(1)).Return(orphan, nil),
		boxes.EXPECT().GetBox(ctx, int64(5)).Return(models.Box{ID: 5}, nil),
		items.EXPECT().UpdateItem(ctx, boxed).Return(boxed, nil),
		items.EXPECT().GetItem(ctx, int64(1)).Return(boxed, nil),
		items.EXPECT().UpdateItem(ctx, orphan).Return(orphan, nil),
	)

	moved, err := svc.Update(ctx, 1, models.ItemInput{BoxID: models.SomeID(5)})
	require.NoError(t, err)
	assert.True(t, moved.Changes.Only("boxId"))
	require.NotNil(t, moved.After.BoxID)
	assert.Equal(t, int64(5), *moved.After.BoxID)

	back, err := svc.Update(ctx, 1, models.ItemInput{BoxID: models.NullID()})
	require.NoError(t, err)
	assert.Nil(t, back.After.BoxID)
	assert.True(t, back.Changes.Only("boxId"))
}

func TestItemService_Update_AbsentBoxIDLeavesBox(t *testing.T) {
	svc, items, _, _ := newTestItemSvc(t)
	ctx := context.Background()

	item := models.Item{ID: 1, Name: "Drill", Quantity: 1, BoxID: ptr(int64(5))}
	renamed := item
	renamed.Name = "Cordless drill"

	items.EXPECT().GetItem(ctx, int64(1)).Return(item, nil)
	items.EXPECT().UpdateItem(ctx, renamed).Return(renamed, nil)

	got, err := svc.Update(ctx, 1, models.ItemInput{Name: ptr("Cordless drill")})

	require.NoError(t, err)
	assert.Equal(t, int64(5), *got.After.BoxID)
	assert.True(t, got.Changes.Only("name"))
}

func TestItemService_Replace_ResetsAbsentFields(t *testing.T) {
	svc, items, _, _ := newTestItemSvc(t)
	ctx := context.Background()

	item := models.Item{ID: 1, Name: "Drill", Description: "18V", Category: "Tools", Quantity: 3, BoxID: ptr(int64(5))}
	want := models.Item{ID: 1, Name: "Drill", Quantity: 1}

	items.EXPECT().GetItem(ctx, int64(1)).Return(item, nil)
	items.EXPECT().UpdateItem(ctx, want).Return(want, nil)

	got, err := svc.Replace(ctx, 1, models.ItemInput{Name: ptr("Drill")})

	require.NoError(t, err)
	assert.Equal(t, want, got.After)
	assert.Len(t, got.Changes, 4)
}

func TestItemService_Delete_RemovesImages(t *testing.T) {
	svc, items, _, images := newTestItemSvc(t)
	ctx := context.Background()

	item := models.Item{ID: 1, Name: "Drill", ImagePath: ptr("a.png"), ThumbnailPath: ptr("a_thumb.jpg")}
	items.EXPECT().GetItem(ctx, int64(1)).Return(item, nil)
	items.EXPECT().DeleteItem(ctx, int64(1)).Return(nil)
	images.EXPECT().Delete(ctx, "a.png", "a_thumb.jpg").Return(errors.New("disk gone"))

	got, err := svc.Delete(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
}

func TestItemService_List_NormalizesPage(t *testing.T) {
	svc, items, _, _ := newTestItemSvc(t)
	ctx := context.Background()

	items.EXPECT().ListItems(ctx, models.ItemFilter{Orphaned: true, Query: "drill", Page: models.Page{Limit: 1000}}).
		Return(nil, 0, nil)

	got, err := svc.List(ctx, models.ItemFilter{Orphaned: true, Query: " drill ", Page: models.Page{Limit: 5000}})

	require.NoError(t, err)
	assert.NotNil(t, got.Data)
	assert.Equal(t, 1000, got.Limit)
}
