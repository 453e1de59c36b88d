package category

import (
	"context"
	"strings"

	"cercle-be/internal/logger"
	"cercle-be/internal/pin"

	"go.uber.org/zap"
)

// PinReassigner moves pins out of a category being deleted.
type PinReassigner interface {
	ReassignCategory(ctx context.Context, from, to string) error
}

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Add(ctx context.Context, name string) (*Category, error)
	Delete(ctx context.Context, name string) error
}

type service struct {
	repo Repository
	pins PinReassigner
}

func NewService(repo Repository, pins PinReassigner) Service {
	return &service{repo: repo, pins: pins}
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Add(ctx context.Context, name string) (*Category, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrMissingName
	}
	return s.repo.Add(ctx, name)
}

// Delete removes a category and reassigns its pins to the default one.
// The default category itself cannot be deleted.
func (s *service) Delete(ctx context.Context, name string) error {
	log := logger.FromCtx(ctx)

	name = normalizeName(name)
	if name == pin.DefaultCategory {
		return ErrDefaultCategory
	}

	if err := s.pins.ReassignCategory(ctx, name, pin.DefaultCategory); err != nil {
		log.Error("failed to reassign pins", zap.String("category", name), zap.Error(err))
		return err
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}

	log.Info("category deleted", zap.String("category", name))
	return nil
}
