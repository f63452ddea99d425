package mocks

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *StatsRepository) RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error) {
	args := m.Called(ctx, limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.RecentOrder), args.Error(1)
}

func (m *StatsRepository) LowStockProducts(ctx context.Context) ([]models.LowStockProduct, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.LowStockProduct), args.Error(1)
}

func (m *StatsRepository) OrdersByStatus(ctx context.Context) (map[models.OrderStatus]int, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[models.OrderStatus]int), args.Error(1)
}

func (m *StatsRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.UserStats), args.Error(1)
}
