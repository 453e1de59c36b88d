package order

import "time"

// Statuses are free strings set by admins; only the pending and shipped
// values carry semantics. "pending" gates owner edits, "shipped" drives
// stock commitment.
const (
	StatusPending = "pending"
	StatusShipped = "shipped"
)

type Order struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
	Items     []*OrderItem
}

// OrderItem snapshots title and price at order-creation time; later
// catalogue edits do not follow. CurrentStock is filled for display when
// the pin still exists.
type OrderItem struct {
	ID           string
	OrderID      string
	PinID        string
	Title        string
	Price        float64
	Quantity     int
	CurrentStock *int
}

// NewItem is a checkout line as requested by the client. Title and price
// are resolved server-side.
type NewItem struct {
	PinID    string
	Quantity int
}

// QuantityEdit adjusts one line of a pending order, matched by its
// snapshotted title.
type QuantityEdit struct {
	Title    string
	Quantity int
}
