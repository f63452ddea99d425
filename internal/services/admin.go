package service

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
)

// AdminService serves the dashboard aggregates.
type AdminService struct {
	statsRepo  repository.StatsRepository
	authorizer authz.Authorizer
}

func NewAdminService(statsRepo repository.StatsRepository, authorizer authz.Authorizer) *AdminService {
	return &AdminService{statsRepo: statsRepo, authorizer: authorizer}
}

type DashboardView struct {
	Stats          *models.DashboardStats     `json:"stats"`
	RecentOrders   []models.RecentOrder       `json:"recent_orders"`
	LowStock       []models.LowStockProduct   `json:"low_stock"`
	OrdersByStatus map[models.OrderStatus]int `json:"orders_by_status"`
}

func (s *AdminService) Dashboard(ctx context.Context, actor *models.Claims) (*DashboardView, error) {
	if !s.authorizer.CanViewDashboard(actor) {
		return nil, errors.ForbiddenError("Dashboard access requires the admin role")
	}

	stats, err := s.statsRepo.DashboardStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load dashboard stats").WithError(err)
	}

	recent, err := s.statsRepo.RecentOrders(ctx, 10)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load recent orders").WithError(err)
	}

	lowStock, err := s.statsRepo.LowStockProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load low stock products").WithError(err)
	}

	byStatus, err := s.statsRepo.OrdersByStatus(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load order status breakdown").WithError(err)
	}

	return &DashboardView{
		Stats:          stats,
		RecentOrders:   recent,
		LowStock:       lowStock,
		OrdersByStatus: byStatus,
	}, nil
}

func (s *AdminService) OrderStats(ctx context.Context, actor *models.Claims) (map[models.OrderStatus]int, error) {
	if !s.authorizer.CanViewDashboard(actor) {
		return nil, errors.ForbiddenError("Dashboard access requires the admin role")
	}

	byStatus, err := s.statsRepo.OrdersByStatus(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load order status breakdown").WithError(err)
	}

	return byStatus, nil
}

func (s *AdminService) UserStats(ctx context.Context, actor *models.Claims) (*models.UserStats, error) {
	if !s.authorizer.CanViewDashboard(actor) {
		return nil, errors.ForbiddenError("Dashboard access requires the admin role")
	}

	stats, err := s.statsRepo.UserStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load user stats").WithError(err)
	}

	return stats, nil
}
