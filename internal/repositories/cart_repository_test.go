package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCartRepo(db)
	ctx := context.Background()

	itemColumns := []string{"id", "cart_id", "product_id", "quantity", "product_snapshot", "created_at"}

	t.Run("CreateCart_ForGuest", func(t *testing.T) {
		guestID := "guest-7f3a"
		cart := &models.Cart{GuestID: &guestID}
		newID := uuid.New()
		now := time.Now()

		expectedSQL := regexp.QuoteMeta(`
		INSERT INTO carts (user_id, guest_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(nil, &guestID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID, now, now))

		err := repo.CreateCart(ctx, cart)

		require.NoError(t, err)
		assert.Equal(t, newID, cart.ID)
	})

	t.Run("GetCartByGuestID_NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM carts WHERE guest_id = $1`)).
			WithArgs("guest-unknown").
			WillReturnError(sql.ErrNoRows)

		cart, err := repo.GetCartByGuestID(ctx, "guest-unknown")

		assert.Nil(t, cart)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("ListItems_UnmarshalsSnapshot", func(t *testing.T) {
		cartID := uuid.New()
		itemID := uuid.New()
		productID := uuid.New()
		now := time.Now()

		snapshot := []byte(`{"id":"` + productID.String() + `","name":"Salmon Cat Treats","price":450}`)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items WHERE cart_id = $1 ORDER BY created_at`)).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(itemID, cartID, productID, 2, snapshot, now))

		items, err := repo.ListItems(ctx, cartID)

		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, "Salmon Cat Treats", items[0].Product.Name)
		assert.InDelta(t, 450.0, items[0].Product.Price, 0.001)
	})

	t.Run("ListItems_NilSnapshot", func(t *testing.T) {
		cartID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items WHERE cart_id = $1 ORDER BY created_at`)).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows(itemColumns).
				AddRow(uuid.New(), cartID, uuid.New(), 1, nil, now))

		items, err := repo.ListItems(ctx, cartID)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].Product)
	})

	t.Run("UpdateItemQuantity_NoRows", func(t *testing.T) {
		itemID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE cart_items SET quantity = $1 WHERE id = $2`)).
			WithArgs(5, itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateItemQuantity(ctx, itemID, 5), sql.ErrNoRows)
	})

	t.Run("DeleteItems_EmptyCartSucceeds", func(t *testing.T) {
		cartID := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.DeleteItems(ctx, cartID))
	})
}
