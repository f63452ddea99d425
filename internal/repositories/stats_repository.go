package repository

import (
	"context"
	"database/sql"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
)

// LowStockThreshold marks products considered low on stock for the admin
// dashboard.
const LowStockThreshold = 10

type StatsRepository interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error)
	LowStockProducts(ctx context.Context) ([]models.LowStockProduct, error)
	OrdersByStatus(ctx context.Context) (map[models.OrderStatus]int, error)
	UserStats(ctx context.Context) (*models.UserStats, error)
}

type statsRepository struct {
	DB *sql.DB
}

func NewStatsRepo(db *sql.DB) StatsRepository {
	return &statsRepository{DB: db}
}

func (r *statsRepository) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.DashboardStats{}

	query := `
		SELECT
			COALESCE((SELECT SUM(price * quantity) FROM order_items), 0),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = $1),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE last_login_time IS NOT NULL),
			(SELECT COUNT(*) FROM products WHERE stock < $2)`

	err := r.DB.QueryRowContext(dbCtx, query, models.OrderStatusPending, LowStockThreshold).
		Scan(&stats.TotalRevenue, &stats.TotalOrders, &stats.PendingOrders,
			&stats.TotalUsers, &stats.ActiveUsers, &stats.LowStockItems)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT o.id, COALESCE(u.full_name, 'Unknown'), COALESCE(u.email, ''),
		       o.total, o.status, o.order_time
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.order_time DESC
		LIMIT $1`

	rows, err := r.DB.QueryContext(dbCtx, query, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	orders := []models.RecentOrder{}

	for rows.Next() {
		var order models.RecentOrder

		err := rows.Scan(&order.OrderID, &order.CustomerName, &order.CustomerEmail,
			&order.Total, &order.Status, &order.Date)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *statsRepository) LowStockProducts(ctx context.Context) ([]models.LowStockProduct, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, stock FROM products WHERE stock < $1 ORDER BY stock`

	rows, err := r.DB.QueryContext(dbCtx, query, LowStockThreshold)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	products := []models.LowStockProduct{}

	for rows.Next() {
		var product models.LowStockProduct

		if err := rows.Scan(&product.ID, &product.Name, &product.Stock); err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *statsRepository) OrdersByStatus(ctx context.Context) (map[models.OrderStatus]int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	stats := map[models.OrderStatus]int{
		models.OrderStatusPending:    0,
		models.OrderStatusInProgress: 0,
		models.OrderStatusDispatched: 0,
		models.OrderStatusDelivered:  0,
		models.OrderStatusCancelled:  0,
	}

	for rows.Next() {
		var status models.OrderStatus

		var count int

		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		stats[status] = count
	}

	return stats, rows.Err()
}

func (r *statsRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.UserStats{}

	query := `
		SELECT COUNT(*), COUNT(last_login_time)
		FROM users`

	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&stats.TotalUsers, &stats.ActiveUsers); err != nil {
		return nil, err
	}

	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers

	return stats, nil
}
