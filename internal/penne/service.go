package penne

import (
	"context"

	"cercle-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, r *Request) (*Request, error)
	ListMine(ctx context.Context, userID string) ([]*Request, error)
	// Update applies partial edits to the caller's own request; only
	// pending requests can still be edited.
	Update(ctx context.Context, userID, id string, input UpdateInput) (*Request, error)

	ListAll(ctx context.Context) ([]*Request, error)
	SetStatus(ctx context.Context, id, status string) (*Request, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, r *Request) (*Request, error) {
	log := logger.FromCtx(ctx).With(zap.String("user_id", r.UserID))

	if r.Color == "" {
		return nil, ErrMissingColor
	}
	if r.HeadSize == "" {
		return nil, ErrMissingHeadSize
	}

	if err := s.repo.Create(ctx, r); err != nil {
		log.Error("failed to create penne request", zap.Error(err))
		return nil, err
	}

	log.Info("penne request created", zap.String("request_id", r.ID))
	return r, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Request, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, id string, input UpdateInput) (*Request, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID || existing.Status != StatusPending {
		return nil, ErrForbidden
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) ListAll(ctx context.Context) ([]*Request, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) SetStatus(ctx context.Context, id, status string) (*Request, error) {
	if status != StatusPending && status != StatusProcessed {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(zap.String("request_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("penne request deleted")
	return nil
}
