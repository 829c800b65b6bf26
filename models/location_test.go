package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLocationTree(t *testing.T) {
	house, garage, missing := int64(1), int64(2), int64(99)
	tree := BuildLocationTree([]Location{
		{ID: 1, Name: "House"},
		{ID: 2, Name: "Garage", ParentID: &house},
		{ID: 3, Name: "Shelf", ParentID: &garage},
		{ID: 4, Name: "Stray", ParentID: &missing},
	}, map[int64]int{3: 2})

	assert.Equal(t, []int64{1, 4}, tree.RootIDs)
	assert.Equal(t, []int64{2}, tree.Nodes[1].ChildIDs)
	assert.Equal(t, []int64{3}, tree.Nodes[2].ChildIDs)
	assert.Empty(t, tree.Nodes[3].ChildIDs)
	assert.Equal(t, 2, tree.Nodes[3].BoxCount)

	assert.Equal(t, []string{"House", "Garage", "Shelf"}, tree.Path(3))
	assert.Equal(t, []string{"Stray"}, tree.Path(4))
	assert.Empty(t, tree.Path(42))
}

func TestLocationTree_PathStopsOnCycle(t *testing.T) {
	a, b := int64(1), int64(2)
	tree := LocationTree{Nodes: map[int64]*LocationNode{
		1: {Location: Location{ID: 1, Name: "A", ParentID: &b}},
		2: {Location: Location{ID: 2, Name: "B", ParentID: &a}},
	}}

	path := tree.Path(1)
	require.Len(t, path, 2)
	assert.Equal(t, []string{"B", "A"}, path)
}
