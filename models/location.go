package models

import "time"

// Location is a node in the storage hierarchy. Parent and children are id
// references resolved at read time; the tree is never embedded.
type Location struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ref returns the tagged reference to l.
func (l Location) Ref() ResourceRef {
	return ResourceRef{Kind: ResourceLocation, ID: l.ID}
}

// LocationInput is the body of POST/PUT/PATCH on /api/locations. On PATCH
// absent fields are left untouched; ParentID distinguishes null from absent.
type LocationInput struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ParentID OptionalID `json:"parentId,omitzero" validate:"omitempty,gt=0"`
}

// LocationNode is a location together with the ids of its children and the
// number of boxes it directly holds.
type LocationNode struct {
	Location
	ChildIDs []int64 `json:"childIds"`
	BoxCount int     `json:"boxCount"`
}

// LocationTree is the arena form of the whole hierarchy.
type LocationTree struct {
	Nodes   map[int64]*LocationNode `json:"nodes"`
	RootIDs []int64                 `json:"rootIds"`
}

// BuildLocationTree resolves parent references into child lists. Locations
// whose parent is missing from locations are treated as roots.
func BuildLocationTree(locations []Location, boxCounts map[int64]int) LocationTree {
	tree := LocationTree{
		Nodes:   make(map[int64]*LocationNode, len(locations)),
		RootIDs: make([]int64, 0),
	}

	for _, l := range locations {
		tree.Nodes[l.ID] = &LocationNode{Location: l, ChildIDs: make([]int64, 0), BoxCount: boxCounts[l.ID]}
	}

	for _, l := range locations {
		if l.ParentID != nil {
			if parent, ok := tree.Nodes[*l.ParentID]; ok {
				parent.ChildIDs = append(parent.ChildIDs, l.ID)
				continue
			}
		}
		tree.RootIDs = append(tree.RootIDs, l.ID)
	}

	return tree
}

// Path returns the names from the root down to id; empty if id is unknown.
func (t LocationTree) Path(id int64) []string {
	var reversed []string
	seen := make(map[int64]bool)
	for cur, ok := t.Nodes[id]; ok; {
		if seen[cur.ID] {
			break
		}
		seen[cur.ID] = true
		reversed = append(reversed, cur.Name)
		if cur.ParentID == nil {
			break
		}
		cur, ok = t.Nodes[*cur.ParentID]
	}

	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(reversed)-1-i] = name
	}
	return path
}
