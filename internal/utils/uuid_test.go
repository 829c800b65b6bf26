package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFileNames(t *testing.T) {
	image, thumb := ImageFileNames(".png")

	require.True(t, strings.HasSuffix(image, ".png"))
	require.True(t, strings.HasSuffix(thumb, "_thumb.jpg"))

	base := strings.TrimSuffix(image, ".png")
	assert.Equal(t, base, strings.TrimSuffix(thumb, "_thumb.jpg"))

	parsed, err := uuid.Parse(base)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	next, _ := ImageFileNames(".png")
	assert.NotEqual(t, image, next)
}
