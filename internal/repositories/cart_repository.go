package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByGuestID(ctx context.Context, guestID string) (*models.Cart, error)
	TouchCart(ctx context.Context, cartID uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	AddItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, guest_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, cart.UserID, cart.GuestID).
		Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT id, user_id, guest_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID)
}

func (r *cartRepository) GetCartByGuestID(ctx context.Context, guestID string) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT id, user_id, guest_id, created_at, updated_at FROM carts WHERE guest_id = $1`, guestID)
}

func (r *cartRepository) getCart(ctx context.Context, query string, arg any) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, arg).
		Scan(&cart.ID, &cart.UserID, &cart.GuestID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (r *cartRepository) TouchCart(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)

	return err
}

const cartItemColumns = `id, cart_id, product_id, quantity, product_snapshot, created_at`

func scanCartItem(scan func(dest ...any) error) (*models.CartItem, error) {
	item := &models.CartItem{}

	var snapshotJSON []byte

	err := scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &snapshotJSON, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &item.Product); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product snapshot: %w", err)
		}
	}

	return item, nil
}

func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY created_at`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		item, err := scanCartItem(rows.Scan)
		if err != nil {
			return nil, err
		}

		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *cartRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1`

	return scanCartItem(r.DB.QueryRowContext(dbCtx, query, itemID).Scan)
}

func (r *cartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	return scanCartItem(r.DB.QueryRowContext(dbCtx, query, cartID, productID).Scan)
}

func (r *cartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var snapshotJSON any

	if item.Product != nil {
		data, err := json.Marshal(item.Product)
		if err != nil {
			return fmt.Errorf("failed to marshal product snapshot: %w", err)
		}

		snapshotJSON = data
	}

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, product_snapshot, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	return r.DB.QueryRowContext(dbCtx, query, item.CartID, item.ProductID, item.Quantity, snapshotJSON).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// DeleteItems purges every line item; the cart row itself survives for
// reuse.
func (r *cartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)

	return err
}
