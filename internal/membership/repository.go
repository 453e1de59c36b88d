package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Upsert(ctx context.Context, userID string, year int, code string) (*Card, error)
	Get(ctx context.Context, userID string, year int) (*Card, error)
	ListByUser(ctx context.Context, userID string) ([]*Card, error)
	Delete(ctx context.Context, userID string, year int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Upsert updates the code for (user, year) in place, or inserts a new card.
// The (year, code) unique constraint surfaces as ErrCodeTaken.
func (r *repository) Upsert(ctx context.Context, userID string, year int, code string) (*Card, error) {
	card := &Card{UserID: userID, Year: year, Code: code}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO memberships (id, user_id, year, code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year) DO UPDATE SET code = EXCLUDED.code
		RETURNING id
	`, uuid.New().String(), userID, year, code).Scan(&card.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return card, nil
}

func (r *repository) Get(ctx context.Context, userID string, year int) (*Card, error) {
	var card Card
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, year, code FROM memberships
		WHERE user_id = $1 AND year = $2
	`, userID, year).Scan(&card.ID, &card.UserID, &card.Year, &card.Code)

	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, year, code FROM memberships
		WHERE user_id = $1 ORDER BY year DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*Card
	for rows.Next() {
		var card Card
		if err := rows.Scan(&card.ID, &card.UserID, &card.Year, &card.Code); err != nil {
			return nil, err
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}

func (r *repository) Delete(ctx context.Context, userID string, year int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = $1 AND year = $2`, userID, year)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCardNotFound
	}
	return nil
}
