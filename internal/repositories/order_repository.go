package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, status models.OrderStatus, paymentType string) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, order_time, payment_type, status, first_name, last_name,
	email, phone, address, city, zip_code, subtotal, delivery_charges, total`

// CreateOrder inserts the order header and its line items in one
// transaction, so a half-written order never becomes visible.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, order_time, payment_type, status, first_name, last_name,
			email, phone, address, city, zip_code, subtotal, delivery_charges, total)
		VALUES ($1, NOW(), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, order_time`

	err = tx.QueryRowContext(dbCtx, query, order.UserID, order.PaymentType, order.Status,
		order.FirstName, order.LastName, order.Email, order.Phone, order.Address, order.City,
		order.ZipCode, order.Subtotal, order.DeliveryCharges, order.Total).
		Scan(&order.ID, &order.OrderTime)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, price, quantity, product_name, product_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRowContext(dbCtx, itemQuery, order.ID, item.ProductID, item.Price,
			item.Quantity, item.ProductName, item.ProductImage).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.UserID,
		&order.OrderTime, &order.PaymentType, &order.Status, &order.FirstName, &order.LastName,
		&order.Email, &order.Phone, &order.Address, &order.City, &order.ZipCode,
		&order.Subtotal, &order.DeliveryCharges, &order.Total)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_time DESC`, userID)
}

func (r *orderRepository) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return r.listOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_time DESC`)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		var order models.Order

		err := rows.Scan(&order.ID, &order.UserID, &order.OrderTime, &order.PaymentType,
			&order.Status, &order.FirstName, &order.LastName, &order.Email, &order.Phone,
			&order.Address, &order.City, &order.ZipCode, &order.Subtotal,
			&order.DeliveryCharges, &order.Total)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, product_id, price, quantity, product_name, product_image, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := []models.OrderItem{}

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price,
			&item.Quantity, &item.ProductName, &item.ProductImage, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id uuid.UUID, status models.OrderStatus, paymentType string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, payment_type = $2 WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, status, paymentType, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// DeleteOrder removes the order and its line items together; line items
// never outlive their order.
func (r *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	result, err := tx.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := requireRowsAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}
