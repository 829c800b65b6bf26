package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeepLink(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ResourceRef
		wantErr bool
	}{
		{name: "custom scheme", raw: "sortr://item/5", want: ResourceRef{Kind: ResourceItem, ID: 5}},
		{name: "surrounding spaces", raw: "  sortr://box/7 ", want: ResourceRef{Kind: ResourceBox, ID: 7}},
		{name: "https", raw: "https://inv.example/location/3", want: ResourceRef{Kind: ResourceLocation, ID: 3}},
		{name: "https with prefix and plural", raw: "https://inv.example/app/boxes/12/", want: ResourceRef{Kind: ResourceBox, ID: 12}},
		{name: "user is not linkable", raw: "sortr://user/1", wantErr: true},
		{name: "unknown kind", raw: "sortr://shelf/1", wantErr: true},
		{name: "zero id", raw: "sortr://item/0", wantErr: true},
		{name: "bad id", raw: "sortr://item/abc", wantErr: true},
		{name: "missing id", raw: "sortr://item", wantErr: true},
		{name: "other scheme", raw: "ftp://inv.example/item/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeepLink(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDeepLink)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResourceRef_Links(t *testing.T) {
	ref := ResourceRef{Kind: ResourceBox, ID: 7}

	assert.Equal(t, "sortr://box/7", ref.DeepLink())
	assert.Equal(t, "https://inv.example/box/7", ref.WebLink("https://inv.example/"))

	back, err := ParseDeepLink(ref.WebLink("https://inv.example"))
	require.NoError(t, err)
	assert.Equal(t, ref, back)
}

func TestNewResourceRef(t *testing.T) {
	_, err := NewResourceRef("shelf", 1)
	require.ErrorIs(t, err, ErrUnknownResourceKind)

	_, err = NewResourceRef(ResourceItem, -1)
	require.Error(t, err)

	ref, err := NewResourceRef(ResourceUser, 2)
	require.NoError(t, err)
	assert.False(t, ref.Kind.Shareable())
}

func TestParseResourceKind(t *testing.T) {
	for in, want := range map[string]ResourceKind{
		"items":     ResourceItem,
		"Box":       ResourceBox,
		"locations": ResourceLocation,
		" user ":    ResourceUser,
	} {
		got, err := ParseResourceKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseResourceKind("")
	assert.ErrorIs(t, err, ErrUnknownResourceKind)
}
