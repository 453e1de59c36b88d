package httpx

import (
	"time"

	"cercle-be/internal/membership"
	"cercle-be/internal/order"
	"cercle-be/internal/penne"
	"cercle-be/internal/pin"
	"cercle-be/internal/pinrequest"
	"cercle-be/internal/user"
)

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	MemberID  *string   `json:"memberId,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		MemberID:  u.MemberID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*user.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type pinResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toPinResponse(p *pin.Pin) pinResponse {
	return pinResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func toPinResponses(pins []*pin.Pin) []pinResponse {
	out := make([]pinResponse, 0, len(pins))
	for _, p := range pins {
		out = append(out, toPinResponse(p))
	}
	return out
}

type orderItemResponse struct {
	ID           string  `json:"id"`
	PinID        string  `json:"pinId"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CurrentStock *int    `json:"currentStock,omitempty"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []orderItemResponse `json:"items"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:           item.ID,
			PinID:        item.PinID,
			Title:        item.Title,
			Price:        item.Price,
			Quantity:     item.Quantity,
			CurrentStock: item.CurrentStock,
		})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

func toOrderResponses(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

type cardResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Year   int    `json:"year"`
	Code   string `json:"code"`
}

func toCardResponse(c *membership.Card) cardResponse {
	return cardResponse{ID: c.ID, UserID: c.UserID, Year: c.Year, Code: c.Code}
}

func toCardResponses(cards []*membership.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

type pinRequestResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPinRequestResponse(r *pinrequest.Request) pinRequestResponse {
	return pinRequestResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Title:     r.Title,
		Quantity:  r.Quantity,
		Notes:     r.Notes,
		LogoURL:   r.LogoURL,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func toPinRequestResponses(requests []*pinrequest.Request) []pinRequestResponse {
	out := make([]pinRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toPinRequestResponse(r))
	}
	return out
}

type penneResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Color      string    `json:"color"`
	Trim       string    `json:"trim,omitempty"`
	Embroidery string    `json:"embroidery,omitempty"`
	HeadSize   string    `json:"headSize"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toPenneResponse(r *penne.Request) penneResponse {
	return penneResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Color:      r.Color,
		Trim:       r.Trim,
		Embroidery: r.Embroidery,
		HeadSize:   r.HeadSize,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

func toPenneResponses(requests []*penne.Request) []penneResponse {
	out := make([]penneResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toPenneResponse(r))
	}
	return out
}
