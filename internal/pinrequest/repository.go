package pinrequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	ListByUser(ctx context.Context, userID string) ([]*Request, error)
	ListAll(ctx context.Context) ([]*Request, error)
	UpdateStatus(ctx context.Context, id, status string) (*Request, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const requestColumns = `id, user_id, first_name, last_name, title, quantity, notes, logo_url, status, created_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.UserID, &r.FirstName, &r.LastName,
		&r.Title, &r.Quantity, &r.Notes, &r.LogoURL, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pin_requests (`+requestColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, req.ID, req.UserID, req.FirstName, req.LastName,
		req.Title, req.Quantity, req.Notes, req.LogoURL, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pin request: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM pin_requests WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Request, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Request, error) {
	return r.list(ctx, ``)
}

func (r *repository) list(ctx context.Context, where string, args ...interface{}) ([]*Request, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM pin_requests `+where+` ORDER BY created_at DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) (*Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `
		UPDATE pin_requests SET status = $2 WHERE id = $1
		RETURNING `+requestColumns,
		id, status))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pin_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRequestNotFound
	}
	return nil
}
