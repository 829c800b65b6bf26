package models

import "time"

// Item is the leaf of the hierarchy. A nil BoxID marks an orphaned item,
// still addressable on its own.
type Item struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	BoxID         *int64    `json:"boxId"`
	ImagePath     *string   `json:"imagePath,omitempty"`
	ThumbnailPath *string   `json:"thumbnailPath,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (i Item) Ref() ResourceRef {
	return ResourceRef{Kind: ResourceItem, ID: i.ID}
}

// Orphaned reports whether the item is not in any box.
func (i Item) Orphaned() bool {
	return i.BoxID == nil
}

// ItemInput is the body of POST/PUT/PATCH on /api/items.
type ItemInput struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,max=128"`
	Quantity    *int       `json:"quantity,omitempty" validate:"omitempty,gte=0,lte=1000000"`
	BoxID       OptionalID `json:"boxId,omitzero" validate:"omitempty,gt=0"`
}

// ItemFilter narrows GET /api/items.
type ItemFilter struct {
	BoxID    *int64
	Orphaned bool
	Category string
	Query    string
	Page     Page
}

// ItemImage describes stored image files of an item.
type ItemImage struct {
	ImagePath     string
	ThumbnailPath string
	ContentType   string
}
