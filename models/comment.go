package models

import (
	"regexp"
	"time"
)

// Comment is a note left by a user on an item, box or location.
type Comment struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	ResourceRef
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentInput is the body of POST /api/comments.
type CommentInput struct {
	ResourceRef
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

var mentionPattern = regexp.MustCompile(`(?:^|\s)@([\p{L}\p{N}_]{3,64})`)

// Mentions returns the distinct usernames mentioned with @ in body, in
// order of first appearance.
func (c CommentInput) Mentions() []string {
	matches := mentionPattern.FindAllStringSubmatch(c.Body, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
