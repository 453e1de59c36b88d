package membership

import (
	"context"

	"cercle-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	UpsertCard(ctx context.Context, userID string, year int, rawCode string) (*Card, error)
	ListCards(ctx context.Context, userID string) ([]*Card, error)
	DeleteCard(ctx context.Context, userID string, year int) error

	// IssueToken produces the signed payload shown as a QR code by the
	// card holder.
	IssueToken(ctx context.Context, userID string, year int) (string, error)
	// VerifyToken checks signature and expiry, then re-reads the card so a
	// revoked or edited card invalidates previously issued tokens.
	VerifyToken(ctx context.Context, tokenStr string) (*Card, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) UpsertCard(ctx context.Context, userID string, year int, rawCode string) (*Card, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", userID),
		zap.Int("year", year),
	)

	if year < 1900 || year > 2999 {
		return nil, ErrInvalidYear
	}

	code, err := NormalizeCode(rawCode)
	if err != nil {
		log.Info("rejected membership code", zap.String("code", rawCode))
		return nil, err
	}

	card, err := s.repo.Upsert(ctx, userID, year, code)
	if err != nil {
		log.Error("failed to upsert card", zap.Error(err))
		return nil, err
	}

	log.Info("membership card upserted", zap.String("code", code))
	return card, nil
}

func (s *service) ListCards(ctx context.Context, userID string) ([]*Card, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) DeleteCard(ctx context.Context, userID string, year int) error {
	return s.repo.Delete(ctx, userID, year)
}

func (s *service) IssueToken(ctx context.Context, userID string, year int) (string, error) {
	card, err := s.repo.Get(ctx, userID, year)
	if err != nil {
		return "", err
	}
	return GenerateCardToken(card)
}

func (s *service) VerifyToken(ctx context.Context, tokenStr string) (*Card, error) {
	claims, err := ParseCardToken(tokenStr)
	if err != nil {
		return nil, err
	}

	card, err := s.repo.Get(ctx, claims.UserID, claims.Year)
	if err != nil {
		return nil, ErrCardRevoked
	}
	if card.Code != claims.Code {
		return nil, ErrCardRevoked
	}

	return card, nil
}
