package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cercle-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	Delete(ctx context.Context, id string) error

	SetActivationToken(ctx context.Context, id, jti string, expiry time.Time) error
	Activate(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id, jti string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, first_name, last_name, member_id, email, password_hash, role,
	is_active, created_at,
	activation_token, activation_token_expiry, reset_token, reset_token_expiry
`

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.MemberID, &u.Email,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt,
		&u.ActivationToken, &u.ActivationTokenExpiry,
		&u.ResetToken, &u.ResetTokenExpiry,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, first_name, last_name, member_id, email, password_hash,
			role, is_active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID, u.FirstName, u.LastName, u.MemberID, u.Email,
		u.PasswordHash, u.Role, u.IsActive, u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_email_key":
				return ErrEmailExists
			case "users_member_id_key":
				return ErrMemberIDExists
			}
		}
		return err
	}
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) UpdateRole(ctx context.Context, id string, role Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user together with their orders, order items and
// memberships in one transaction, so a mid-way failure leaves nothing
// half-deleted.
func (r *repository) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(zap.String("user_id", id))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM order_items
		WHERE order_id IN (SELECT id FROM orders WHERE user_id = $1)
	`, id); err != nil {
		log.Error("failed to delete order items", zap.Error(err))
		return fmt.Errorf("delete order items: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE user_id = $1`, id); err != nil {
		log.Error("failed to delete orders", zap.Error(err))
		return fmt.Errorf("delete orders: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = $1`, id); err != nil {
		log.Error("failed to delete memberships", zap.Error(err))
		return fmt.Errorf("delete memberships: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user", zap.Error(err))
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return tx.Commit()
}

func (r *repository) SetActivationToken(ctx context.Context, id, jti string, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET activation_token = $2, activation_token_expiry = $3
		WHERE id = $1
	`, id, jti, expiry)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) Activate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_active = TRUE,
			activation_token = NULL, activation_token_expiry = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) SetResetToken(ctx context.Context, id, jti string, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_token = $2, reset_token_expiry = $3
		WHERE id = $1
	`, id, jti, expiry)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $2,
			reset_token = NULL, reset_token_expiry = NULL
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
