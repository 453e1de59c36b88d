package pinrequest

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Request, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Request), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Request), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id, status string) (*Request, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(originalName string, src io.Reader) (string, error) {
	args := m.Called(originalName, src)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Delete(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockFileStore))

		repo.On("Create", ctx, mock.AnythingOfType("*pinrequest.Request")).Return(nil)

		r, err := svc.Create(ctx, &Request{
			UserID: "u-1", FirstName: "Ada", LastName: "Lovelace",
			Title: "Anniversary pin", Quantity: 20, LogoURL: "/uploads/logo.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "Anniversary pin", r.Title)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockFileStore))

		_, err := svc.Create(ctx, &Request{UserID: "u-1", Quantity: 5})
		assert.ErrorIs(t, err, ErrMissingTitle)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockFileStore))

		_, err := svc.Create(ctx, &Request{UserID: "u-1", Title: "x", Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockFileStore))

		repo.On("UpdateStatus", ctx, "r-1", "approved").
			Return(&Request{ID: "r-1", Status: "approved"}, nil)

		r, err := svc.SetStatus(ctx, "r-1", "approved")
		require.NoError(t, err)
		assert.Equal(t, "approved", r.Status)
	})

	t.Run("EmptyStatus", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockFileStore))

		_, err := svc.SetStatus(ctx, "r-1", "")
		assert.ErrorIs(t, err, ErrMissingStatus)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesLogoFile", func(t *testing.T) {
		repo := new(MockRepository)
		files := new(MockFileStore)
		svc := NewService(repo, files)

		repo.On("Get", ctx, "r-1").Return(&Request{
			ID: "r-1", LogoURL: "/uploads/logo.png",
		}, nil)
		repo.On("Delete", ctx, "r-1").Return(nil)
		files.On("Delete", "/uploads/logo.png").Return(nil)

		require.NoError(t, svc.Delete(ctx, "r-1"))
		files.AssertExpectations(t)
	})

	t.Run("NoLogo", func(t *testing.T) {
		repo := new(MockRepository)
		files := new(MockFileStore)
		svc := NewService(repo, files)

		repo.On("Get", ctx, "r-1").Return(&Request{ID: "r-1"}, nil)
		repo.On("Delete", ctx, "r-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "r-1"))
		files.AssertNotCalled(t, "Delete")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockFileStore))

		repo.On("Get", ctx, "ghost").Return(nil, ErrRequestNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, "ghost"), ErrRequestNotFound)
	})
}
