package pin

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Pin, error)
	Get(ctx context.Context, id string) (*Pin, error)
	Create(ctx context.Context, p *Pin) error
	Update(ctx context.Context, id string, input UpdateInput) (*Pin, error)
	Delete(ctx context.Context, id string) error
	SetStock(ctx context.Context, id string, stock int) (*Pin, error)
	ReassignCategory(ctx context.Context, from, to string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const pinColumns = `id, title, price, description, image_url, category, stock, created_at`

func scanPin(row interface{ Scan(...interface{}) error }) (*Pin, error) {
	var p Pin
	err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Description,
		&p.ImageURL, &p.Category, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Pin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+pinColumns+` FROM pins ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []*Pin
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (*Pin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+pinColumns+` FROM pins WHERE id = $1`, id)

	p, err := scanPin(row)
	if err == sql.ErrNoRows {
		return nil, ErrPinNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Pin) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pins (id, title, price, description, image_url, category, stock, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, p.ID, p.Title, p.Price, p.Description, p.ImageURL, p.Category, p.Stock, p.CreatedAt)
	return err
}

func (r *repository) Update(ctx context.Context, id string, input UpdateInput) (*Pin, error) {
	set := []string{}
	args := []interface{}{id}

	addField := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Title != nil {
		addField("title", *input.Title)
	}
	if input.Price != nil {
		addField("price", *input.Price)
	}
	if input.Description != nil {
		addField("description", *input.Description)
	}
	if input.ImageURL != nil {
		addField("image_url", *input.ImageURL)
	}
	if input.Category != nil {
		addField("category", *input.Category)
	}

	if len(set) == 0 {
		return r.Get(ctx, id)
	}

	query := `UPDATE pins SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + pinColumns

	p, err := scanPin(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPinNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPinNotFound
	}
	return nil
}

func (r *repository) SetStock(ctx context.Context, id string, stock int) (*Pin, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE pins SET stock = $2 WHERE id = $1 RETURNING `+pinColumns,
		id, stock)

	p, err := scanPin(row)
	if err == sql.ErrNoRows {
		return nil, ErrPinNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ReassignCategory(ctx context.Context, from, to string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pins SET category = $2 WHERE category = $1`, from, to)
	return err
}
