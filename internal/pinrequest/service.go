package pinrequest

import (
	"context"

	"cercle-be/internal/logger"
	"cercle-be/internal/upload"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, r *Request) (*Request, error)
	ListMine(ctx context.Context, userID string) ([]*Request, error)
	ListAll(ctx context.Context) ([]*Request, error)
	SetStatus(ctx context.Context, id, status string) (*Request, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	files upload.Store
}

func NewService(repo Repository, files upload.Store) Service {
	return &service{repo: repo, files: files}
}

func (s *service) Create(ctx context.Context, r *Request) (*Request, error) {
	log := logger.FromCtx(ctx).With(zap.String("user_id", r.UserID))

	if r.Title == "" {
		return nil, ErrMissingTitle
	}
	if r.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if err := s.repo.Create(ctx, r); err != nil {
		log.Error("failed to create pin request", zap.Error(err))
		return nil, err
	}

	log.Info("pin request created",
		zap.String("request_id", r.ID),
		zap.String("title", r.Title),
	)
	return r, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Request, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Request, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) SetStatus(ctx context.Context, id, status string) (*Request, error) {
	if status == "" {
		return nil, ErrMissingStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(zap.String("request_id", id))

	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete pin request", zap.Error(err))
		return err
	}

	if r.LogoURL != "" {
		if err := s.files.Delete(r.LogoURL); err != nil {
			log.Warn("failed to delete request logo", zap.Error(err))
		}
	}

	log.Info("pin request deleted")
	return nil
}
