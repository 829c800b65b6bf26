package models

import "time"

// Box belongs to exactly one Location and holds Items.
type Box struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LocationID  int64     `json:"locationId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b Box) Ref() ResourceRef {
	return ResourceRef{Kind: ResourceBox, ID: b.ID}
}

// BoxInput is the body of POST/PUT/PATCH on /api/boxes.
type BoxInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	LocationID  *int64  `json:"locationId,omitempty" validate:"omitempty,gt=0"`
}

// BoxFilter narrows GET /api/boxes.
type BoxFilter struct {
	LocationID *int64
	Page       Page
}
