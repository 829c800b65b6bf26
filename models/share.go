package models

import "time"

// Permission granted by a share.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// Share grants UserID access to a resource, given by SharedByUserID.
type Share struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"userId"`
	SharedByUserID int64 `json:"sharedByUserId"`
	ResourceRef
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ShareInput is the body of POST /api/shares. Permission defaults to view.
type ShareInput struct {
	Username string `json:"username" validate:"required"`
	ResourceRef
	Permission Permission `json:"permission" validate:"omitempty,permission"`
}
