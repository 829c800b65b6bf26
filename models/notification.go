package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationShare   NotificationType = "share"
	NotificationComment NotificationType = "comment"
	NotificationMention NotificationType = "mention"
)

// Notification is addressed to a single user. The resource reference is
// optional; IsRead only ever moves from false to true.
type Notification struct {
	ID     int64            `json:"id"`
	UserID int64            `json:"userId"`
	Type   NotificationType `json:"type"`
	// Message is a ready-to-display text.
	Message string `json:"message"`
	*ResourceRef
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationFilter narrows GET /api/notifications.
type NotificationFilter struct {
	UserID     int64
	UnreadOnly bool
	Page       Page
}

// UnreadCount is the body of GET /api/notifications/unread-count.
type UnreadCount struct {
	Count int `json:"count"`
}
