package pin

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinRows(p *Pin) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "price", "description", "image_url", "category", "stock", "created_at",
	}).AddRow(p.ID, p.Title, p.Price, p.Description, p.ImageURL, p.Category, p.Stock, p.CreatedAt)
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &Pin{ID: "p-1", Title: "Fox pin", Price: 5.5, Description: "enamel",
			ImageURL: "/uploads/x.png", Category: "Animals", Stock: 3, CreatedAt: time.Now()}

		mock.ExpectQuery(`SELECT .* FROM pins WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnRows(pinRows(p))

		got, err := repo.Get(ctx, "p-1")
		assert.NoError(t, err)
		assert.Equal(t, 3, got.Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM pins WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrPinNotFound)
	})
}

func TestRepository_Create_Defaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`INSERT INTO pins`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &Pin{Title: "Fox pin", Price: 5, Description: "d", ImageURL: "/uploads/x.png"}
	err = repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, DefaultCategory, p.Category)
}

func TestRepository_Update_PartialFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	title := "New title"
	price := 7.5
	p := &Pin{ID: "p-1", Title: title, Price: price, Description: "d",
		ImageURL: "/uploads/x.png", Category: "Other", Stock: 2, CreatedAt: time.Now()}

	mock.ExpectQuery(`UPDATE pins SET title = \$2, price = \$3 WHERE id = \$1 RETURNING`).
		WithArgs("p-1", title, price).
		WillReturnRows(pinRows(p))

	got, err := repo.Update(ctx, "p-1", UpdateInput{Title: &title, Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
}

func TestRepository_Update_NoFieldsFallsBackToGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	p := &Pin{ID: "p-1", Title: "T", Price: 1, Description: "d",
		ImageURL: "/u", Category: "Other", Stock: 0, CreatedAt: time.Now()}

	mock.ExpectQuery(`SELECT .* FROM pins WHERE id = \$1`).
		WithArgs("p-1").
		WillReturnRows(pinRows(p))

	got, err := repo.Update(context.Background(), "p-1", UpdateInput{})
	assert.NoError(t, err)
	assert.Equal(t, "T", got.Title)
}

func TestRepository_SetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	p := &Pin{ID: "p-1", Title: "T", Price: 1, Description: "d",
		ImageURL: "/u", Category: "Other", Stock: 9, CreatedAt: time.Now()}

	mock.ExpectQuery(`UPDATE pins SET stock = \$2 WHERE id = \$1 RETURNING`).
		WithArgs("p-1", 9).
		WillReturnRows(pinRows(p))

	got, err := repo.SetStock(context.Background(), "p-1", 9)
	assert.NoError(t, err)
	assert.Equal(t, 9, got.Stock)
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM pins WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "p-1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM pins WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrPinNotFound)
	})
}

func TestRepository_ReassignCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE pins SET category = \$2 WHERE category = \$1`).
		WithArgs("Animals", DefaultCategory).
		WillReturnResult(sqlmock.NewResult(0, 4))

	assert.NoError(t, repo.ReassignCategory(context.Background(), "Animals", DefaultCategory))
}
