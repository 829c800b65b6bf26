// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comraich/sortr-sub001/models"
)

func Test_buildSelectQuery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		where       sq.Sqlizer
		orderBy     string
		page        *models.Page
		wantParts   []string
		absentParts []string
		wantArgs    []any
	}{
		{
			name:        "no filter, no page",
			wantParts:   []string{"select id, name, parent_id", "from locations"},
			absentParts: []string{"where", "limit", "offset"},
		},
		{
			name:      "filter and order",
			where:     sq.Eq{"parent_id": int64(7)},
			orderBy:   "name",
			wantParts: []string{"where parent_id = $1", "order by name"},
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "page is normalized",
			page:      &models.Page{Limit: 5000, Offset: -3},
			wantParts: []string{"limit 1000", "offset 0"},
		},
		{
			name:      "default page size",
			page:      &models.Page{},
			wantParts: []string{"limit 100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectQuery(ctx, locationsTable, locationColumns, tt.where, tt.orderBy, tt.page)
			require.NoError(t, err)

			q := strings.ToLower(query)
			for _, part := range tt.wantParts {
				assert.Contains(t, q, part)
			}
			for _, part := range tt.absentParts {
				assert.NotContains(t, q, part)
			}
			assert.Equal(t, tt.wantArgs, nilIfEmpty(args))
		})
	}
}

func Test_itemFilterCondition(t *testing.T) {
	boxID := int64(3)

	tests := []struct {
		name      string
		filter    models.ItemFilter
		wantNil   bool
		wantParts []string
		wantArgs  []any
	}{
		{
			name:    "empty filter",
			wantNil: true,
		},
		{
			name:      "box",
			filter:    models.ItemFilter{BoxID: &boxID},
			wantParts: []string{"box_id = ?"},
			wantArgs:  []any{int64(3)},
		},
		{
			name:      "orphaned",
			filter:    models.ItemFilter{Orphaned: true},
			wantParts: []string{"box_id is null"},
		},
		{
			name:      "category and search",
			filter:    models.ItemFilter{Category: "tools", Query: "50%_off"},
			wantParts: []string{"category = ?", "name ilike ?", "description ilike ?"},
			wantArgs:  []any{"tools", `%50\%\_off%`, `%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := itemFilterCondition(tt.filter)
			if tt.wantNil {
				assert.Nil(t, cond)
				return
			}
			require.NotNil(t, cond)

			query, args, err := cond.ToSql()
			require.NoError(t, err)
			q := strings.ToLower(query)
			for _, part := range tt.wantParts {
				assert.Contains(t, q, part)
			}
			assert.Equal(t, tt.wantArgs, nilIfEmpty(args))
		})
	}
}

func Test_buildInsertItemsQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("multi-row insert with returning", func(t *testing.T) {
		query, args, err := buildInsertItemsQuery(ctx,
			models.Item{Name: "hammer", Quantity: 1},
			models.Item{Name: "saw", Quantity: 2},
		)
		require.NoError(t, err)

		q := strings.ToLower(query)
		assert.Contains(t, q, "insert into items")
		assert.Contains(t, q, "returning id, name")
		assert.Contains(t, query, "$14")
		assert.Len(t, args, 14)
	})

	t.Run("no rows", func(t *testing.T) {
		_, _, err := buildInsertItemsQuery(ctx)
		assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	})
}

func Test_buildInsertActivitiesQuery(t *testing.T) {
	ctx := context.Background()
	userID := int64(9)

	query, args, err := buildInsertActivitiesQuery(ctx, models.Activity{
		UserID:     &userID,
		Action:     models.ActionUpdate,
		EntityType: models.ResourceItem,
		EntityName: "hammer",
		Metadata:   models.ActivityMetadata{IP: "10.0.0.1", UserAgent: "ua"},
	})
	require.NoError(t, err)

	assert.Contains(t, strings.ToLower(query), "insert into activities")
	require.Len(t, args, 7)
	assert.Nil(t, args[5], "empty changes must be stored as NULL")
	assert.JSONEq(t, `{"ip":"10.0.0.1","userAgent":"ua"}`, args[6].(string))
}

func Test_providerColumn(t *testing.T) {
	for provider, want := range map[models.OAuthProvider]string{
		models.ProviderGoogle:    "google_id",
		models.ProviderGithub:    "github_id",
		models.ProviderMicrosoft: "microsoft_id",
	} {
		col, err := providerColumn(provider)
		require.NoError(t, err)
		assert.Equal(t, want, col)
	}

	_, err := providerColumn("myspace")
	assert.ErrorIs(t, err, models.ErrUnknownProvider)
}

func Test_buildMarkReadQuery(t *testing.T) {
	query, args, err := buildMarkReadQuery(context.Background(), 4, 2)
	require.NoError(t, err)

	assert.Contains(t, query, "SET is_read = $1")
	assert.Contains(t, query, "WHERE id = $2 AND user_id = $3")
	assert.Equal(t, []any{true, int64(4), int64(2)}, args)
}

func nilIfEmpty(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	return args
}
