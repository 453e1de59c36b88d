package pin

import "time"

// DefaultCategory collects pins whose category was deleted.
const DefaultCategory = "Other"

type Pin struct {
	ID          string
	Title       string
	Price       float64
	Description string
	ImageURL    string
	Category    string
	Stock       int
	CreatedAt   time.Time
}

// UpdateInput carries partial edits; nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Price       *float64
	Description *string
	ImageURL    *string
	Category    *string
}
