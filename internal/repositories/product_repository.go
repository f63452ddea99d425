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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, category_id, subcategory_id, name, description, price, stock,
	images, weight, brand, age_range, rating, num_reviews, discount, is_visible,
	created_at, updated_at`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `
		INSERT INTO products (category_id, subcategory_id, name, description, price, stock,
			images, weight, brand, age_range, rating, num_reviews, discount, is_visible,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.SubcategoryID,
		product.Name, product.Description, product.Price, product.Stock, imagesJSON,
		product.Weight, product.Brand, product.AgeRange, product.Rating, product.NumReviews,
		product.Discount, product.IsVisible).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func scanProduct(scan func(dest ...any) error) (*models.Product, error) {
	product := &models.Product{}

	var imagesJSON []byte

	err := scan(&product.ID, &product.CategoryID, &product.SubcategoryID, &product.Name,
		&product.Description, &product.Price, &product.Stock, &imagesJSON, &product.Weight,
		&product.Brand, &product.AgeRange, &product.Rating, &product.NumReviews,
		&product.Discount, &product.IsVisible, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product images: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return scanProduct(r.DB.QueryRowContext(dbCtx, query, id).Scan)
}

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`

	var args []any

	if filter != nil {
		if filter.CategoryID != nil {
			args = append(args, *filter.CategoryID)
			query += fmt.Sprintf(" AND category_id = $%d", len(args))
		}

		if filter.SubcategoryID != nil {
			args = append(args, *filter.SubcategoryID)
			query += fmt.Sprintf(" AND subcategory_id = $%d", len(args))
		}

		if filter.Visible != nil {
			args = append(args, *filter.Visible)
			query += fmt.Sprintf(" AND is_visible = $%d", len(args))
		}
	}

	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}

		products = append(products, *product)
	}

	return products, rows.Err()
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal product images: %w", err)
	}

	query := `
		UPDATE products SET category_id = $1, subcategory_id = $2, name = $3, description = $4,
			price = $5, stock = $6, images = $7, weight = $8, brand = $9, age_range = $10,
			rating = $11, num_reviews = $12, discount = $13, is_visible = $14, updated_at = NOW()
		WHERE id = $15
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.SubcategoryID,
		product.Name, product.Description, product.Price, product.Stock, imagesJSON,
		product.Weight, product.Brand, product.AgeRange, product.Rating, product.NumReviews,
		product.Discount, product.IsVisible, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// DecrementStock subtracts quantity from the product's stock in a single
// statement. There is no stock floor; an oversold product goes negative.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}
