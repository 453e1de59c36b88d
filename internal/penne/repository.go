package penne

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	ListByUser(ctx context.Context, userID string) ([]*Request, error)
	ListAll(ctx context.Context) ([]*Request, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Request, error)
	UpdateStatus(ctx context.Context, id, status string) (*Request, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const penneColumns = `id, user_id, first_name, last_name, color, trim, embroidery, head_size, status, created_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.UserID, &r.FirstName, &r.LastName,
		&r.Color, &r.Trim, &r.Embroidery, &r.HeadSize, &r.Status, &r.CreatedAt)
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
		INSERT INTO penne_requests (`+penneColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, req.ID, req.UserID, req.FirstName, req.LastName,
		req.Color, req.Trim, req.Embroidery, req.HeadSize, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert penne request: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx,
		`SELECT `+penneColumns+` FROM penne_requests WHERE id = $1`, id))
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
		`SELECT `+penneColumns+` FROM penne_requests `+where+` ORDER BY created_at DESC`,
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

func (r *repository) Update(ctx context.Context, id string, input UpdateInput) (*Request, error) {
	set := []string{}
	args := []interface{}{id}

	addField := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Color != nil {
		addField("color", *input.Color)
	}
	if input.Trim != nil {
		addField("trim", *input.Trim)
	}
	if input.Embroidery != nil {
		addField("embroidery", *input.Embroidery)
	}
	if input.HeadSize != nil {
		addField("head_size", *input.HeadSize)
	}

	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	query := `UPDATE penne_requests SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + penneColumns

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) (*Request, error) {
	req, err := scanRequest(r.db.QueryRowContext(ctx, `
		UPDATE penne_requests SET status = $2 WHERE id = $1
		RETURNING `+penneColumns,
		id, status))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM penne_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRequestNotFound
	}
	return nil
}
