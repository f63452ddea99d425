package mocks

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type WishlistRepository struct {
	mock.Mock
}

func (m *WishlistRepository) AddItem(ctx context.Context, item *models.WishlistItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *WishlistRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, error) {
	args := m.Called(ctx, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.WishlistItem), args.Error(1)
}

func (m *WishlistRepository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error) {
	args := m.Called(ctx, userID, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.WishlistItem), args.Error(1)
}

func (m *WishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.WishlistItem), args.Error(1)
}

func (m *WishlistRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)

	return args.Error(0)
}

func (m *WishlistRepository) DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}
