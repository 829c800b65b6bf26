package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testRepos holds one mock per repository behind a store.Repositories.
type testRepos struct {
	repos         *store.Repositories
	users         *mock.MockUserRepository
	locations     *mock.MockLocationRepository
	boxes         *mock.MockBoxRepository
	items         *mock.MockItemRepository
	categories    *mock.MockCategoryRepository
	activities    *mock.MockActivityRepository
	shares        *mock.MockShareRepository
	notifications *mock.MockNotificationRepository
	comments      *mock.MockCommentRepository
}

func newTestRepos(ctrl *gomock.Controller) testRepos {
	r := testRepos{
		users:         mock.NewMockUserRepository(ctrl),
		locations:     mock.NewMockLocationRepository(ctrl),
		boxes:         mock.NewMockBoxRepository(ctrl),
		items:         mock.NewMockItemRepository(ctrl),
		categories:    mock.NewMockCategoryRepository(ctrl),
		activities:    mock.NewMockActivityRepository(ctrl),
		shares:        mock.NewMockShareRepository(ctrl),
		notifications: mock.NewMockNotificationRepository(ctrl),
		comments:      mock.NewMockCommentRepository(ctrl),
	}
	r.repos = &store.Repositories{
		Transactor:    passThroughTx(ctrl),
		Users:         r.users,
		Locations:     r.locations,
		Boxes:         r.boxes,
		Items:         r.items,
		Categories:    r.categories,
		Activities:    r.activities,
		Shares:        r.shares,
		Notifications: r.notifications,
		Comments:      r.comments,
	}
	return r
}

var (
	alice = models.Identity{UserID: 1, Username: "alice"}
	admin = models.Identity{UserID: 99, Username: "root", IsAdmin: true}
)

// ── Shares ──

func TestShareService_Create_NotifiesAndRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRepos(ctrl)
	activities := mock.NewMockActivityService(ctrl)
	svc := NewShareService(r.repos, activities, logger.Nop())
	ctx := context.Background()

	ref := models.ResourceRef{Kind: models.ResourceBox, ID: 9}
	r.users.EXPECT().FindUserByUsername(ctx, "bob").Return(models.User{ID: 2, Username: "bob"}, nil)
	r.boxes.EXPECT().GetBox(ctx, int64(9)).Return(models.Box{ID: 9, Name: "Winter clothes"}, nil)
	r.shares.EXPECT().CreateShare(ctx, models.Share{UserID: 2, SharedByUserID: 1, ResourceRef: ref, Permission: models.PermissionView}).
		Return(models.Share{ID: 3, UserID: 2, SharedByUserID: 1, ResourceRef: ref, Permission: models.PermissionView}, nil)
	r.notifications.EXPECT().CreateNotifications(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ns ...models.Notification) error {
			require.Len(t, ns, 1)
			assert.Equal(t, int64(2), ns[0].UserID)
			assert.Equal(t, models.NotificationShare, ns[0].Type)
			assert.Equal(t, `alice shared box "Winter clothes" with you (view)`, ns[0].Message)
			assert.Equal(t, &ref, ns[0].ResourceRef)
			return nil
		})
	activities.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Activity) error {
			assert.Equal(t, models.ActionUpdate, a.Action)
			assert.Equal(t, models.ResourceBox, a.EntityType)
			assert.Equal(t, int64(9), *a.EntityID)
			assert.JSONEq(t, `{"sharedWith":"bob","permission":"view"}`, string(a.Changes))
			return errors.New("activity table locked")
		})

	share, err := svc.Create(ctx, alice, models.ShareInput{Username: "bob", ResourceRef: ref})

	require.NoError(t, err, "activity failures must not fail the share")
	assert.Equal(t, int64(3), share.ID)
}

func TestShareService_Create_Rejections(t *testing.T) {
	ref := models.ResourceRef{Kind: models.ResourceItem, ID: 4}

	t.Run("unknown user", func(t *testing.T) {
		r := newTestRepos(gomock.NewController(t))
		svc := NewShareService(r.repos, nil, logger.Nop())
		r.users.EXPECT().FindUserByUsername(gomock.Any(), "ghost").Return(models.User{}, store.ErrNotFound)

		_, err := svc.Create(context.Background(), alice, models.ShareInput{Username: "ghost", ResourceRef: ref})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "user ghost not found", err.Error())
	})

	t.Run("self", func(t *testing.T) {
		r := newTestRepos(gomock.NewController(t))
		svc := NewShareService(r.repos, nil, logger.Nop())
		r.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(models.User{ID: 1, Username: "alice"}, nil)

		_, err := svc.Create(context.Background(), alice, models.ShareInput{Username: "alice", ResourceRef: ref})

		requireFieldError(t, err, "username", "not_self")
	})

	t.Run("missing resource", func(t *testing.T) {
		r := newTestRepos(gomock.NewController(t))
		svc := NewShareService(r.repos, nil, logger.Nop())
		r.users.EXPECT().FindUserByUsername(gomock.Any(), "bob").Return(models.User{ID: 2}, nil)
		r.items.EXPECT().GetItem(gomock.Any(), int64(4)).Return(models.Item{}, store.ErrNotFound)

		_, err := svc.Create(context.Background(), alice, models.ShareInput{Username: "bob", ResourceRef: ref})

		assert.Equal(t, "item 4 not found", err.Error())
	})

	t.Run("duplicate", func(t *testing.T) {
		r := newTestRepos(gomock.NewController(t))
		svc := NewShareService(r.repos, nil, logger.Nop())
		r.users.EXPECT().FindUserByUsername(gomock.Any(), "bob").Return(models.User{ID: 2}, nil)
		r.items.EXPECT().GetItem(gomock.Any(), int64(4)).Return(models.Item{ID: 4, Name: "Drill"}, nil)
		r.shares.EXPECT().CreateShare(gomock.Any(), gomock.Any()).Return(models.Share{}, store.ErrAlreadyExists)

		_, err := svc.Create(context.Background(), alice, models.ShareInput{Username: "bob", ResourceRef: ref})

		assert.ErrorIs(t, err, ErrAlreadyShared)
	})
}

func TestShareService_Delete_Permissions(t *testing.T) {
	share := models.Share{ID: 3, UserID: 2, SharedByUserID: 1}

	tests := []struct {
		name    string
		actor   models.Identity
		allowed bool
	}{
		{name: "owner", actor: alice, allowed: true},
		{name: "recipient", actor: models.Identity{UserID: 2}, allowed: true},
		{name: "admin", actor: admin, allowed: true},
		{name: "stranger", actor: models.Identity{UserID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepos(gomock.NewController(t))
			svc := NewShareService(r.repos, nil, logger.Nop())
			r.shares.EXPECT().GetShare(gomock.Any(), int64(3)).Return(share, nil)
			if tt.allowed {
				r.shares.EXPECT().DeleteShare(gomock.Any(), int64(3)).Return(nil)
			}

			_, err := svc.Delete(context.Background(), tt.actor, 3)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

// ── Comments ──

func TestCommentService_Create_NotifiesMentionsAndParticipants(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewCommentService(r.repos, logger.Nop())
	ctx := context.Background()

	ref := models.ResourceRef{Kind: models.ResourceLocation, ID: 2}
	body := "@bob can you check this? cc @nobody @alice"

	r.locations.EXPECT().GetLocation(ctx, int64(2)).Return(models.Location{ID: 2, Name: "Garage"}, nil)
	r.comments.EXPECT().CreateComment(ctx, models.Comment{UserID: 1, ResourceRef: ref, Body: body}).
		Return(models.Comment{ID: 10, UserID: 1, ResourceRef: ref, Body: body}, nil)
	r.users.EXPECT().FindUserByUsername(ctx, "bob").Return(models.User{ID: 2, Username: "bob"}, nil)
	r.users.EXPECT().FindUserByUsername(ctx, "nobody").Return(models.User{}, store.ErrNotFound)
	r.users.EXPECT().FindUserByUsername(ctx, "alice").Return(models.User{ID: 1, Username: "alice"}, nil)
	r.shares.EXPECT().ListResourceParticipants(ctx, ref).Return([]int64{1, 2, 3}, nil)
	r.notifications.EXPECT().CreateNotifications(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ns ...models.Notification) error {
			require.Len(t, ns, 2)
			assert.Equal(t, int64(2), ns[0].UserID)
			assert.Equal(t, models.NotificationMention, ns[0].Type)
			assert.True(t, strings.HasPrefix(ns[0].Message, `alice mentioned you on location "Garage": `))
			assert.Equal(t, int64(3), ns[1].UserID)
			assert.Equal(t, models.NotificationComment, ns[1].Type)
			return nil
		})

	got, err := svc.Create(ctx, alice, models.CommentInput{ResourceRef: ref, Body: "  " + body + " "})

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestCommentService_Delete_OnlyAuthorOrAdmin(t *testing.T) {
	comment := models.Comment{ID: 10, UserID: 1}

	for name, tc := range map[string]struct {
		actor   models.Identity
		allowed bool
	}{
		"author":   {actor: alice, allowed: true},
		"admin":    {actor: admin, allowed: true},
		"stranger": {actor: models.Identity{UserID: 2}},
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRepos(gomock.NewController(t))
			svc := NewCommentService(r.repos, logger.Nop())
			r.comments.EXPECT().GetComment(gomock.Any(), int64(10)).Return(comment, nil)
			if tc.allowed {
				r.comments.EXPECT().DeleteComment(gomock.Any(), int64(10)).Return(nil)
			}

			_, err := svc.Delete(context.Background(), tc.actor, 10)

			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", excerpt("short \n text"))

	long := strings.Repeat("é", 200)
	got := []rune(excerpt(long))
	assert.Len(t, got, notificationExcerptLength)
	assert.Equal(t, '…', got[len(got)-1])
}

// ── Users ──

func TestUserService_SelfModificationRefused(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewUserService(r.users, logger.Nop())

	_, err := svc.SetAdmin(context.Background(), admin, admin.UserID, false)
	assert.ErrorIs(t, err, ErrSelfModification)

	_, err = svc.Delete(context.Background(), admin, admin.UserID)
	assert.ErrorIs(t, err, ErrSelfModification)
}

func TestUserService_SetAdmin(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewUserService(r.users, logger.Nop())

	r.users.EXPECT().SetAdmin(gomock.Any(), int64(2), true).Return(models.User{ID: 2, IsAdmin: true}, nil)
	r.users.EXPECT().SetAdmin(gomock.Any(), int64(3), true).Return(models.User{}, store.ErrNotFound)

	got, err := svc.SetAdmin(context.Background(), admin, 2, true)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	_, err = svc.SetAdmin(context.Background(), admin, 3, true)
	assert.Equal(t, "user 3 not found", err.Error())
}

// ── Activity ──

func TestActivityService_Record_FillsActorFromContext(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewActivityService(r.activities, logger.Nop())

	ctx := utils.WithIdentity(context.Background(), alice)
	ctx = utils.WithActivityMetadata(ctx, models.ActivityMetadata{IP: "10.0.0.1", UserAgent: "curl/8"})

	r.activities.EXPECT().CreateActivity(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Activity) (models.Activity, error) {
			require.NotNil(t, a.UserID)
			assert.Equal(t, int64(1), *a.UserID)
			assert.Equal(t, "10.0.0.1", a.Metadata.IP)
			return a, nil
		})

	require.NoError(t, svc.Record(ctx, models.Activity{Action: models.ActionCreate, EntityType: models.ResourceItem}))
}

func TestActivityService_RecordBulk(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewActivityService(r.activities, logger.Nop())
	ctx := context.Background()

	n, err := svc.RecordBulk(ctx, models.Activity{Action: models.ActionCreate}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	r.activities.EXPECT().CreateActivities(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []models.Activity) (int64, error) {
			require.Len(t, rows, 2)
			assert.Equal(t, "Drill", rows[0].EntityName)
			assert.Equal(t, int64(2), *rows[1].EntityID)
			assert.Nil(t, rows[0].UserID)
			assert.Equal(t, json.RawMessage(`{"quantity":3}`), rows[1].Changes)
			return int64(len(rows)), nil
		})

	n, err = svc.RecordBulk(ctx, models.Activity{Action: models.ActionCreate, EntityType: models.ResourceItem}, []models.ActivityEntity{
		{ID: int64Ref(1), Name: "Drill"},
		{ID: int64Ref(2), Name: "Saw", Changes: json.RawMessage(`{"quantity":3}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

// ── Notifications ──

func TestNotificationService_MarkRead_Unknown(t *testing.T) {
	r := newTestRepos(gomock.NewController(t))
	svc := NewNotificationService(r.notifications, logger.Nop())

	r.notifications.EXPECT().MarkRead(gomock.Any(), int64(8), int64(1)).Return(models.Notification{}, store.ErrNotFound)

	_, err := svc.MarkRead(context.Background(), 1, 8)

	assert.Equal(t, "notification 8 not found", err.Error())
}
