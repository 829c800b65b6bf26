// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	out := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		out[f.Field] = f.Rule
	}
	return out
}

func TestStructValidator_ReportsEveryField(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), models.RegisterRequest{
		Username: "a",
		Password: "",
		Email:    ptr("not-an-email"),
	})

	fields := fieldsOf(t, err)
	assert.Equal(t, "min", fields["username"])
	assert.Equal(t, "required", fields["password"])
	assert.Equal(t, "email", fields["email"])
	assert.Len(t, fields, 3)
}

func TestStructValidator_ValidBody(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), &models.Credentials{Username: "alice", Password: "secret1"})
	assert.NoError(t, err)
}

func TestStructValidator_PointerFields(t *testing.T) {
	v := NewStructValidator()

	// absent fields are skipped
	require.NoError(t, v.Validate(context.Background(), models.ItemInput{}))

	// present but empty name is rejected
	fields := fieldsOf(t, v.Validate(context.Background(), models.ItemInput{Name: ptr(""), Quantity: ptr(-1)}))
	assert.Equal(t, "min", fields["name"])
	assert.Equal(t, "gte", fields["quantity"])
}

func TestStructValidator_OptionalID(t *testing.T) {
	v := NewStructValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"boxId": null}`},
		{name: "positive", body: `{"boxId": 7}`},
		{name: "zero", body: `{"boxId": 0}`, wantErr: true},
		{name: "negative", body: `{"boxId": -3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in models.ItemInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			err := v.Validate(ctx, in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, "gt", fieldsOf(t, err)["boxId"])
		})
	}
}

func TestStructValidator_ResourceKindAndPermission(t *testing.T) {
	v := NewStructValidator()

	fields := fieldsOf(t, v.Validate(context.Background(), models.ShareInput{
		Username:    "bob",
		ResourceRef: models.ResourceRef{Kind: models.ResourceUser, ID: 1},
		Permission:  "owner",
	}))
	assert.Equal(t, "resource_kind", fields["resourceType"])
	assert.Equal(t, "permission", fields["permission"])

	err := v.Validate(context.Background(), models.ShareInput{
		Username:    "bob",
		ResourceRef: models.ResourceRef{Kind: models.ResourceBox, ID: 3},
	})
	assert.NoError(t, err)
}

func TestStructValidator_Partial(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), models.RegisterRequest{Username: "alice"}, "Username")
	assert.NoError(t, err)

	fields := fieldsOf(t, v.Validate(context.Background(), models.RegisterRequest{Username: "alice"}, "Password"))
	assert.Equal(t, "required", fields["password"])
}

func TestStructValidator_UnsupportedType(t *testing.T) {
	v := NewStructValidator()

	err := v.Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError(
		models.FieldError{Field: "parentId", Rule: "cycle", Message: "would create a cycle"},
		models.FieldError{Field: "name", Rule: "required", Message: "is required"},
	)
	assert.Equal(t, "validation failed: parentId would create a cycle; name is required", err.Error())
}
