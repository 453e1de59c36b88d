package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(u *User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "member_id", "email", "password_hash",
		"role", "is_active", "created_at",
		"activation_token", "activation_token_expiry", "reset_token", "reset_token_expiry",
	}).AddRow(
		u.ID, u.FirstName, u.LastName, u.MemberID, u.Email, u.PasswordHash,
		u.Role, u.IsActive, u.CreatedAt,
		u.ActivationToken, u.ActivationTokenExpiry, u.ResetToken, u.ResetTokenExpiry,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		u := &User{FirstName: "Alex", LastName: "Dupont", Role: RoleMember}
		err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, &User{FirstName: "A", LastName: "B"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DuplicateMemberID", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_member_id_key"})

		err := repo.Create(ctx, &User{FirstName: "A", LastName: "B"})
		assert.ErrorIs(t, err, ErrMemberIDExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		email := "a@b.c"
		u := &User{ID: "u-1", FirstName: "Alex", LastName: "Dupont",
			Email: &email, Role: RoleMember, CreatedAt: time.Now()}

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs(email).
			WillReturnRows(userRows(u))

		got, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("missing@b.c").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByEmail(ctx, "missing@b.c")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	u := &User{ID: "u-1", FirstName: "Alex", LastName: "Dupont",
		Role: RoleAdmin, CreatedAt: time.Now()}

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at DESC`).
		WillReturnRows(userRows(u))

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, RoleAdmin, users[0].Role)
}

func TestRepository_UpdateRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET role = \$2 WHERE id = \$1`).
			WithArgs("u-1", RoleVerifier).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRole(ctx, "u-1", RoleVerifier))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET role = \$2 WHERE id = \$1`).
			WithArgs("missing", RoleVerifier).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateRole(ctx, "missing", RoleVerifier), ErrUserNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("DeletesDependentsInOneTx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM order_items`).
			WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM orders WHERE user_id = \$1`).
			WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM memberships WHERE user_id = \$1`).
			WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(ctx, "u-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnFailure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM order_items`).
			WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM orders WHERE user_id = \$1`).
			WithArgs("u-1").WillReturnError(errors.New("db down"))
		mock.ExpectRollback()

		assert.Error(t, repo.Delete(ctx, "u-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE users SET password_hash = \$2`).
		WithArgs("u-1", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdatePassword(context.Background(), "u-1", "newhash"))
}
