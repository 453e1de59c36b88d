package order

import (
	"context"
	"errors"

	"cercle-be/internal/logger"
	"cercle-be/internal/pin"

	"go.uber.org/zap"
)

// Catalogue is the slice of the pin catalogue the order flow needs.
type Catalogue interface {
	Get(ctx context.Context, id string) (*pin.Pin, error)
}

type Service interface {
	// User-facing.
	Create(ctx context.Context, userID string, items []NewItem) (*Order, error)
	ListMine(ctx context.Context, userID string) ([]*Order, error)
	Update(ctx context.Context, userID, orderID string, edits []QuantityEdit) (*Order, error)
	Cancel(ctx context.Context, userID, orderID string) error

	// Admin-facing.
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID, newStatus string) (*Order, error)
	DeleteAny(ctx context.Context, orderID string) error
}

type service struct {
	repo      Repository
	catalogue Catalogue
}

func NewService(repo Repository, catalogue Catalogue) Service {
	return &service{repo: repo, catalogue: catalogue}
}

// Create checks out a new pending order. Title and price are snapshotted
// from the catalogue, never taken from the client. The stock check here is
// a courtesy; shipping time is the final authority.
func (s *service) Create(ctx context.Context, userID string, items []NewItem) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", userID),
		zap.Int("item_count", len(items)),
	)

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	orderItems := make([]*OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		p, err := s.catalogue.Get(ctx, item.PinID)
		if err != nil {
			log.Info("checkout item not found", zap.String("pin_id", item.PinID))
			return nil, err
		}

		if item.Quantity > p.Stock {
			return nil, &InsufficientStockError{
				PinTitle:  p.Title,
				Available: p.Stock,
				Requested: item.Quantity,
			}
		}

		orderItems = append(orderItems, &OrderItem{
			PinID:    p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Quantity: item.Quantity,
		})
	}

	o := &Order{
		UserID: userID,
		Status: StatusPending,
		Items:  orderItems,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ownedPending loads an order and enforces the owner-and-still-pending
// guard shared by Update and Cancel.
func (s *service) ownedPending(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID || o.Status != StatusPending {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, userID, orderID string, edits []QuantityEdit) (*Order, error) {
	if _, err := s.ownedPending(ctx, userID, orderID); err != nil {
		return nil, err
	}

	for _, edit := range edits {
		if edit.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	if err := s.repo.UpdateQuantities(ctx, orderID, edits); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, orderID)
}

func (s *service) Cancel(ctx context.Context, userID, orderID string) error {
	log := logger.FromCtx(ctx)

	if _, err := s.ownedPending(ctx, userID, orderID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}

	log.Info("order canceled",
		zap.String("order_id", orderID),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, orderID, newStatus string) (*Order, error) {
	log := logger.FromCtx(ctx)

	o, err := s.repo.Transition(ctx, orderID, newStatus)
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, err
		}
		log.Error("status transition failed",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteAny(ctx context.Context, orderID string) error {
	return s.repo.Delete(ctx, orderID)
}
