package mocks

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) GetCartByGuestID(ctx context.Context, guestID string) (*models.Cart, error) {
	args := m.Called(ctx, guestID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) TouchCart(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *CartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *CartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, itemID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	args := m.Called(ctx, itemID, quantity)

	return args.Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)

	return args.Error(0)
}

func (m *CartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}
