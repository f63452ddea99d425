package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/R-Agile/epetshop-backend/internal/authz"
	appErrors "github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/repositories/mocks"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminService() (*service.AdminService, *mocks.StatsRepository) {
	statsRepo := new(mocks.StatsRepository)

	return service.NewAdminService(statsRepo, authz.New()), statsRepo
}

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, statsRepo := newAdminService()
		stats := &models.DashboardStats{TotalRevenue: 54300, TotalOrders: 42, PendingOrders: 3}

		statsRepo.On("DashboardStats", ctx).Return(stats, nil).Once()
		statsRepo.On("RecentOrders", ctx, 10).Return([]models.RecentOrder{}, nil).Once()
		statsRepo.On("LowStockProducts", ctx).Return([]models.LowStockProduct{}, nil).Once()
		statsRepo.On("OrdersByStatus", ctx).
			Return(map[models.OrderStatus]int{models.OrderStatusPending: 3}, nil).Once()

		view, err := svc.Dashboard(ctx, adminClaims())

		require.NoError(t, err)
		assert.Equal(t, stats, view.Stats)
		assert.Equal(t, 3, view.OrdersByStatus[models.OrderStatusPending])
		statsRepo.AssertExpectations(t)
	})

	t.Run("Failure - Regular User Denied", func(t *testing.T) {
		svc, statsRepo := newAdminService()

		view, err := svc.Dashboard(ctx, activeClaims(uuid.New()))

		assert.Nil(t, view)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		statsRepo.AssertNotCalled(t, "DashboardStats", mock.Anything)
	})

	t.Run("Failure - Super User Denied", func(t *testing.T) {
		svc, _ := newAdminService()
		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleSuperUser, Status: models.UserStatusActive}

		_, err := svc.Dashboard(ctx, claims)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})

	t.Run("Failure - Stats Query Fails", func(t *testing.T) {
		svc, statsRepo := newAdminService()

		statsRepo.On("DashboardStats", ctx).Return(nil, errors.New("db down")).Once()

		_, err := svc.Dashboard(ctx, adminClaims())

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestAdminService_OrderStats(t *testing.T) {
	ctx := context.Background()

	svc, statsRepo := newAdminService()

	statsRepo.On("OrdersByStatus", ctx).
		Return(map[models.OrderStatus]int{
			models.OrderStatusPending:   2,
			models.OrderStatusDelivered: 7,
		}, nil).Once()

	byStatus, err := svc.OrderStats(ctx, adminClaims())

	require.NoError(t, err)
	assert.Equal(t, 7, byStatus[models.OrderStatusDelivered])
}
