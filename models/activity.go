package models

import (
	"encoding/json"
	"time"
)

// ActivityAction is the kind of mutation recorded in the audit log.
type ActivityAction string

const (
	ActionCreate      ActivityAction = "create"
	ActionUpdate      ActivityAction = "update"
	ActionDelete      ActivityAction = "delete"
	ActionMove        ActivityAction = "move"
	ActionUploadImage ActivityAction = "upload_image"
	ActionDeleteImage ActivityAction = "delete_image"
)

// Valid reports whether a is a known action.
func (a ActivityAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionMove, ActionUploadImage, ActionDeleteImage:
		return true
	}
	return false
}

// ActivityMetadata is the request context stored with every record.
type ActivityMetadata struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
}

// Activity is one append-only audit record. A nil UserID marks a system
// action. Records are never updated, so there is no UpdatedAt.
type Activity struct {
	ID         int64            `json:"id"`
	UserID     *int64           `json:"userId"`
	Action     ActivityAction   `json:"action"`
	EntityType ResourceKind     `json:"entityType"`
	EntityID   *int64           `json:"entityId"`
	EntityName string           `json:"entityName"`
	Changes    json.RawMessage  `json:"changes"`
	Metadata   ActivityMetadata `json:"metadata"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ActivityEntity is one subject of a bulk record.
type ActivityEntity struct {
	ID      *int64
	Name    string
	Changes json.RawMessage
}

// ActivityFilter narrows GET /api/activities.
type ActivityFilter struct {
	UserID     *int64
	EntityType *ResourceKind
	EntityID   *int64
	Action     *ActivityAction
	Page       Page
}

// ActivityChanges marshals v into the changes column, returning nil for a
// nil value or a marshal failure.
func ActivityChanges(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// FieldChange is the before/after pair of one updated field.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// FieldChanges maps JSON field names to their change. Only fields whose
// value actually changed are present.
type FieldChanges map[string]FieldChange

// Add records a change of field when from and to differ.
func (c FieldChanges) Add(field string, from, to any) {
	if equalValues(from, to) {
		return
	}
	c[field] = FieldChange{From: from, To: to}
}

// Only reports whether field is the single changed field.
func (c FieldChanges) Only(field string) bool {
	_, ok := c[field]
	return ok && len(c) == 1
}

func equalValues(a, b any) bool {
	switch av := a.(type) {
	case *int64:
		bv, _ := b.(*int64)
		if av == nil || bv == nil {
			return av == nil && bv == nil
		}
		return *av == *bv
	default:
		return a == b
	}
}

// Updated is the outcome of an update: the stored value before and after and
// the fields that changed between them.
type Updated[T any] struct {
	Before  T
	After   T
	Changes FieldChanges
}
