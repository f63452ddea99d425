package repository

import (
	"context"
	"database/sql"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type WishlistRepository interface {
	AddItem(ctx context.Context, item *models.WishlistItem) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, error)
	FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) AddItem(ctx context.Context, item *models.WishlistItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wishlist (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	return r.DB.QueryRowContext(dbCtx, query, item.UserID, item.ProductID).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *wishlistRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, error) {
	return r.getItem(ctx, `SELECT id, user_id, product_id, created_at FROM wishlist WHERE id = $1`, itemID)
}

func (r *wishlistRepository) FindItem(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error) {
	return r.getItem(ctx,
		`SELECT id, user_id, product_id, created_at FROM wishlist WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
}

func (r *wishlistRepository) getItem(ctx context.Context, query string, args ...any) (*models.WishlistItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.WishlistItem{}

	err := r.DB.QueryRowContext(dbCtx, query, args...).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, product_id, created_at FROM wishlist WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := []models.WishlistItem{}

	for rows.Next() {
		var item models.WishlistItem

		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *wishlistRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM wishlist WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *wishlistRepository) DeleteByProduct(ctx context.Context, userID, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}
