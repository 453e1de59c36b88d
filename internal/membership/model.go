package membership

// Card is a yearly membership: one per (user, year), code unique within
// its year but reusable across years.
type Card struct {
	ID     string
	UserID string
	Year   int
	Code   string
}
