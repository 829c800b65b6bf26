package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{name: "zero value", in: Page{}, want: Page{Limit: DefaultPageSize}},
		{name: "too large", in: Page{Limit: 5000, Offset: 10}, want: Page{Limit: MaxPageSize, Offset: 10}},
		{name: "negative offset", in: Page{Limit: 20, Offset: -3}, want: Page{Limit: 20}},
		{name: "kept", in: Page{Limit: 50, Offset: 100}, want: Page{Limit: 50, Offset: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestNewListResponse_NeverNil(t *testing.T) {
	resp := NewListResponse[Item](nil, 0, DefaultPage())

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"limit":100,"offset":0}`, string(b))
}

func TestOptionalID_JSON(t *testing.T) {
	var in ItemInput

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Drill"}`), &in))
	assert.False(t, in.BoxID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"boxId":null}`), &in))
	assert.Equal(t, NullID(), in.BoxID)
	assert.Nil(t, in.BoxID.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"boxId":4}`), &in))
	assert.Equal(t, SomeID(4), in.BoxID)
	require.NotNil(t, in.BoxID.Ptr())
	assert.Equal(t, int64(4), *in.BoxID.Ptr())
}

func TestFieldChanges(t *testing.T) {
	one, two := int64(1), int64(2)

	c := FieldChanges{}
	c.Add("name", "Drill", "Drill")
	c.Add("boxId", &one, &one)
	assert.Empty(t, c)

	c.Add("boxId", &one, &two)
	assert.True(t, c.Only("boxId"))

	c.Add("boxId", &one, nil)
	c.Add("quantity", 1, 3)
	assert.False(t, c.Only("boxId"))
	assert.Len(t, c, 2)
}

func TestCommentInput_Mentions(t *testing.T) {
	in := CommentInput{Body: "@bob please check with @alice and @bob; mail a@b.c @x"}

	assert.Equal(t, []string{"bob", "alice"}, in.Mentions())
}

func TestParseOAuthProvider(t *testing.T) {
	p, err := ParseOAuthProvider("Google-mobile")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, p)

	_, err = ParseOAuthProvider("myspace")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestSession(t *testing.T) {
	s := Session{Token: "t", UserID: 3, Username: "carol"}
	assert.True(t, s.Valid())
	assert.Equal(t, "carol", s.Name())

	s.DisplayName = "Carol"
	assert.Equal(t, "Carol", s.Name())

	assert.False(t, Session{UserID: 3}.Valid())
}

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "")

	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: N/A\n", info.String())
}
