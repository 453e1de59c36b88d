package pin

import (
	"context"

	"cercle-be/internal/logger"
	"cercle-be/internal/upload"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Pin, error)
	Get(ctx context.Context, id string) (*Pin, error)
	Create(ctx context.Context, p *Pin) (*Pin, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Pin, error)
	Delete(ctx context.Context, id string) error
	// SetStock clamps to >= 0; it is the only stock entry point besides the
	// order transition logic.
	SetStock(ctx context.Context, id string, stock int) (*Pin, error)
}

type service struct {
	repo  Repository
	files upload.Store
}

func NewService(repo Repository, files upload.Store) Service {
	return &service{repo: repo, files: files}
}

func (s *service) List(ctx context.Context) ([]*Pin, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Pin, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, p *Pin) (*Pin, error) {
	log := logger.FromCtx(ctx)

	if p.Title == "" || p.Description == "" || p.ImageURL == "" {
		return nil, ErrMissingField
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create pin", zap.Error(err))
		return nil, err
	}

	log.Info("pin created", zap.String("pin_id", p.ID), zap.String("title", p.Title))
	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Pin, error) {
	log := logger.FromCtx(ctx).With(zap.String("pin_id", id))

	var oldImage string
	if input.ImageURL != nil {
		existing, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		oldImage = existing.ImageURL
	}

	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update pin", zap.Error(err))
		return nil, err
	}

	if oldImage != "" && oldImage != p.ImageURL {
		if err := s.files.Delete(oldImage); err != nil {
			log.Warn("failed to delete replaced image", zap.Error(err))
		}
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(zap.String("pin_id", id))

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete pin", zap.Error(err))
		return err
	}

	if err := s.files.Delete(p.ImageURL); err != nil {
		log.Warn("failed to delete pin image", zap.Error(err))
	}

	log.Info("pin deleted")
	return nil
}

func (s *service) SetStock(ctx context.Context, id string, stock int) (*Pin, error) {
	if stock < 0 {
		stock = 0
	}
	return s.repo.SetStock(ctx, id, stock)
}
