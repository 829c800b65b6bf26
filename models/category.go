package models

import "time"

// Category is a named label. Items refer to it loosely by name.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryInput is the body of POST/PUT on /api/categories.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}
