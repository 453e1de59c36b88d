package penne

import "time"

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
)

// Request captures a member's penne (student beret) customization order.
type Request struct {
	ID         string
	UserID     string
	FirstName  string
	LastName   string
	Color      string
	Trim       string
	Embroidery string
	HeadSize   string
	Status     string
	CreatedAt  time.Time
}

// UpdateInput carries partial edits; nil fields are left untouched.
type UpdateInput struct {
	Color      *string
	Trim       *string
	Embroidery *string
	HeadSize   *string
}
