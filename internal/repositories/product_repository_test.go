package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := context.Background()

	productColumns := []string{
		"id", "category_id", "subcategory_id", "name", "description", "price", "stock",
		"images", "weight", "brand", "age_range", "rating", "num_reviews", "discount",
		"is_visible", "created_at", "updated_at",
	}

	t.Run("GetProductByID_Success", func(t *testing.T) {
		productID := uuid.New()
		categoryID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(productID, categoryID, nil, "Grain Free Puppy Kibble",
					"Chicken and rice formula.", 1450.0, 40,
					[]byte(`["/images/kibble.jpg","/images/kibble-back.jpg"]`),
					"2kg", "Pawsome", "puppy", 4.5, 12, 0.0, true, now, now))

		product, err := repo.GetProductByID(ctx, productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, []string{"/images/kibble.jpg", "/images/kibble-back.jpg"}, product.Images)
		assert.Equal(t, 40, product.Stock)
	})

	t.Run("GetProductByID_NotFound", func(t *testing.T) {
		productID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = $1`)).
			WithArgs(productID).
			WillReturnError(sql.ErrNoRows)

		product, err := repo.GetProductByID(ctx, productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("DecrementStock_Success", func(t *testing.T) {
		productID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`)).
			WithArgs(3, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementStock(ctx, productID, 3)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DecrementStock_UnknownProduct", func(t *testing.T) {
		productID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`)).
			WithArgs(3, productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementStock(ctx, productID, 3)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
