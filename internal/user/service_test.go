package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if u.ID == "" {
		u.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetActivationToken(ctx context.Context, id, jti string, expiry time.Time) error {
	args := m.Called(ctx, id, jti, expiry)
	return args.Error(0)
}

func (m *MockRepository) Activate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetResetToken(ctx context.Context, id, jti string, expiry time.Time) error {
	args := m.Called(ctx, id, jti, expiry)
	return args.Error(0)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendActivation(to, name, link string) error {
	args := m.Called(to, name, link)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(to, name, link string) error {
	args := m.Called(to, name, link)
	return args.Error(0)
}

// --- Tests ---

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	email := "a@b.c"

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(&User{
			ID: "u-1", Email: &email, PasswordHash: hash,
			Role: RoleMember, IsActive: true,
		}, nil)

		token, u, err := svc.Login(ctx, email, "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(&User{
			ID: "u-1", Email: &email, PasswordHash: hash, IsActive: true,
		}, nil)

		_, _, err := svc.Login(ctx, email, "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(nil, ErrUserNotFound)

		_, _, err := svc.Login(ctx, email, "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(&User{
			ID: "u-1", Email: &email, PasswordHash: hash, IsActive: false,
		}, nil)

		_, _, err := svc.Login(ctx, email, "s3cret")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("WithEmailSendsActivation", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(MockMailer)
		svc := NewService(repo, mail, "http://localhost")

		email := "new@b.c"
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)
		repo.On("SetActivationToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mail.On("SendActivation", email, "Alex", mock.MatchedBy(func(link string) bool {
			return len(link) > 0
		})).Return(nil)

		u, err := svc.CreateUser(ctx, CreateUserInput{
			FirstName: "Alex", LastName: "Dupont",
			Email: &email, Password: "s3cret",
		})
		assert.NoError(t, err)
		assert.False(t, u.IsActive)
		assert.Equal(t, RoleMember, u.Role)
		mail.AssertExpectations(t)
	})

	t.Run("WithoutEmailStartsActive", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(MockMailer)
		svc := NewService(repo, mail, "http://localhost")

		memberID := "000123"
		repo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.CreateUser(ctx, CreateUserInput{
			FirstName: "Alex", LastName: "Dupont",
			MemberID: &memberID, Password: "s3cret",
		})
		assert.NoError(t, err)
		assert.True(t, u.IsActive)
		mail.AssertNotCalled(t, "SendActivation")
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockMailer), "http://localhost")

		_, err := svc.CreateUser(ctx, CreateUserInput{
			FirstName: "A", LastName: "B", Password: "x", Role: "root",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		email := "dup@b.c"
		repo.On("Create", ctx, mock.Anything).Return(ErrEmailExists)

		_, err := svc.CreateUser(ctx, CreateUserInput{
			FirstName: "A", LastName: "B", Email: &email, Password: "x",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Activate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	jti := "jti-1"
	token, err := GenerateActionToken("u-1", PurposeActivate, jti, time.Hour)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		expiry := time.Now().Add(time.Hour)
		repo.On("FindByID", ctx, "u-1").Return(&User{
			ID: "u-1", ActivationToken: &jti, ActivationTokenExpiry: &expiry,
		}, nil)
		repo.On("Activate", ctx, "u-1").Return(nil)

		assert.NoError(t, svc.Activate(ctx, token))
	})

	t.Run("StaleJTI", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		other := "jti-other"
		repo.On("FindByID", ctx, "u-1").Return(&User{
			ID: "u-1", ActivationToken: &other,
		}, nil)

		assert.ErrorIs(t, svc.Activate(ctx, token), ErrInvalidToken)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockMailer), "http://localhost")
		assert.ErrorIs(t, svc.Activate(ctx, "garbage"), ErrInvalidToken)
	})
}

func TestService_PasswordReset(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	email := "a@b.c"

	t.Run("RequestSendsMail", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(MockMailer)
		svc := NewService(repo, mail, "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(&User{
			ID: "u-1", FirstName: "Alex", Email: &email,
		}, nil)
		repo.On("SetResetToken", ctx, "u-1", mock.Anything, mock.Anything).Return(nil)
		mail.On("SendPasswordReset", email, "Alex", mock.Anything).Return(nil)

		assert.NoError(t, svc.RequestPasswordReset(ctx, email))
		mail.AssertExpectations(t)
	})

	t.Run("RequestUnknownEmailIsSilent", func(t *testing.T) {
		repo := new(MockRepository)
		mail := new(MockMailer)
		svc := NewService(repo, mail, "http://localhost")

		repo.On("FindByEmail", ctx, email).Return(nil, ErrUserNotFound)

		assert.NoError(t, svc.RequestPasswordReset(ctx, email))
		mail.AssertNotCalled(t, "SendPasswordReset")
	})

	t.Run("ResetUpdatesPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		jti := "jti-r"
		token, err := GenerateActionToken("u-1", PurposePasswordReset, jti, time.Hour)
		require.NoError(t, err)

		expiry := time.Now().Add(time.Hour)
		repo.On("FindByID", ctx, "u-1").Return(&User{
			ID: "u-1", ResetToken: &jti, ResetTokenExpiry: &expiry,
		}, nil)
		repo.On("UpdatePassword", ctx, "u-1", mock.AnythingOfType("string")).Return(nil)

		assert.NoError(t, svc.ResetPassword(ctx, token, "newpass"))
		repo.AssertExpectations(t)
	})

	t.Run("ResetConsumedTokenFails", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		token, err := GenerateActionToken("u-1", PurposePasswordReset, "jti-used", time.Hour)
		require.NoError(t, err)

		// reset_token already cleared by a previous reset
		repo.On("FindByID", ctx, "u-1").Return(&User{ID: "u-1"}, nil)

		assert.ErrorIs(t, svc.ResetPassword(ctx, token, "newpass"), ErrInvalidToken)
	})
}

func TestService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMailer), "http://localhost")

		repo.On("UpdateRole", ctx, "u-1", RoleVerifier).Return(nil)
		repo.On("FindByID", ctx, "u-1").Return(&User{ID: "u-1", Role: RoleVerifier}, nil)

		u, err := svc.ChangeRole(ctx, "u-1", "verifier")
		assert.NoError(t, err)
		assert.Equal(t, RoleVerifier, u.Role)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockMailer), "http://localhost")

		_, err := svc.ChangeRole(ctx, "u-1", "root")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	svc := NewService(repo, new(MockMailer), "http://localhost")

	repo.On("Delete", ctx, "u-1").Return(errors.New("db down"))

	assert.Error(t, svc.DeleteUser(ctx, "u-1"))
}
