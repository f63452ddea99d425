package models

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	PendingOrders int     `json:"pending_orders"`
	TotalUsers    int     `json:"total_users"`
	ActiveUsers   int     `json:"active_users"`
	LowStockItems int     `json:"low_stock_items"`
}

type RecentOrder struct {
	OrderID       uuid.UUID   `json:"order_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	Date          time.Time   `json:"date"`
}

type LowStockProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Stock int       `json:"stock"`
}

type UserStats struct {
	TotalUsers    int `json:"total_users"`
	ActiveUsers   int `json:"active_users"`
	InactiveUsers int `json:"inactive_users"`
}
