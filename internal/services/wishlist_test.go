package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/repositories/mocks"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWishlistService() (*service.WishlistService, *mocks.WishlistRepository, *mocks.ProductRepository) {
	wishlistRepo := new(mocks.WishlistRepository)
	productRepo := new(mocks.ProductRepository)

	return service.NewWishlistService(wishlistRepo, productRepo), wishlistRepo, productRepo
}

func TestWishlistService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, wishlistRepo, productRepo := newWishlistService()
		productID := uuid.New()

		productRepo.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID}, nil).Once()
		wishlistRepo.On("FindItem", ctx, userID, productID).Return(nil, errors.New("not found")).Once()
		wishlistRepo.On("AddItem", ctx, mock.AnythingOfType("*models.WishlistItem")).Return(nil).Once()

		item, err := svc.AddItem(ctx, userID, &models.AddWishlistItemRequest{ProductID: productID})

		require.NoError(t, err)
		assert.Equal(t, userID, item.UserID)
		assert.Equal(t, productID, item.ProductID)
	})

	t.Run("Failure - Already Wishlisted", func(t *testing.T) {
		svc, wishlistRepo, productRepo := newWishlistService()
		productID := uuid.New()

		productRepo.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID}, nil).Once()
		wishlistRepo.On("FindItem", ctx, userID, productID).
			Return(&models.WishlistItem{ID: uuid.New(), UserID: userID, ProductID: productID}, nil).Once()

		item, err := svc.AddItem(ctx, userID, &models.AddWishlistItemRequest{ProductID: productID})

		assert.Nil(t, item)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)

		wishlistRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		svc, wishlistRepo, productRepo := newWishlistService()
		productID := uuid.New()

		productRepo.On("GetProductByID", ctx, productID).Return(nil, errors.New("not found")).Once()

		_, err := svc.AddItem(ctx, userID, &models.AddWishlistItemRequest{ProductID: productID})

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)

		wishlistRepo.AssertNotCalled(t, "FindItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWishlistService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Someone Else's Item", func(t *testing.T) {
		svc, wishlistRepo, _ := newWishlistService()
		item := &models.WishlistItem{ID: uuid.New(), UserID: uuid.New(), ProductID: uuid.New()}

		wishlistRepo.On("GetItem", ctx, item.ID).Return(item, nil).Once()

		err := svc.RemoveItem(ctx, uuid.New(), item.ID)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		wishlistRepo.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		svc, wishlistRepo, _ := newWishlistService()
		userID := uuid.New()
		item := &models.WishlistItem{ID: uuid.New(), UserID: userID, ProductID: uuid.New()}

		wishlistRepo.On("GetItem", ctx, item.ID).Return(item, nil).Once()
		wishlistRepo.On("DeleteItem", ctx, item.ID).Return(nil).Once()

		require.NoError(t, svc.RemoveItem(ctx, userID, item.ID))
		wishlistRepo.AssertExpectations(t)
	})
}
