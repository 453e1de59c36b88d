package pinrequest

import "time"

const StatusPending = "pending"

// Request is a member's ask for a custom pin run, with an optional
// uploaded logo to base the design on.
type Request struct {
	ID        string
	UserID    string
	FirstName string
	LastName  string
	Title     string
	Quantity  int
	Notes     string
	LogoURL   string
	Status    string
	CreatedAt time.Time
}
