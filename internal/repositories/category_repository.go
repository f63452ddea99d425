package repository

import (
	"context"
	"database/sql"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateSubcategory(ctx context.Context, sub *models.Subcategory) error
	GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context) ([]models.Subcategory, error)
	ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error
	DeleteSubcategory(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (name, icon, image_url, coming_soon)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Icon,
		category.ImageURL, category.ComingSoon).Scan(&category.ID)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, icon, image_url, coming_soon FROM categories WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&category.ID, &category.Name,
		&category.Icon, &category.ImageURL, &category.ComingSoon)
	if err != nil {
		return nil, err
	}

	subs, err := r.ListSubcategoriesByCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Subcategories = subs

	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.name, c.icon, c.image_url, c.coming_soon,
		       s.id, s.category_id, s.name
		FROM categories c
		LEFT JOIN subcategories s ON s.category_id = c.id
		ORDER BY c.name, s.name`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []models.Category

	index := map[uuid.UUID]int{}

	for rows.Next() {
		var category models.Category

		var subID, subCategoryID *uuid.UUID

		var subName *string

		err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.ImageURL,
			&category.ComingSoon, &subID, &subCategoryID, &subName)
		if err != nil {
			return nil, err
		}

		pos, seen := index[category.ID]
		if !seen {
			category.Subcategories = []models.Subcategory{}
			categories = append(categories, category)
			pos = len(categories) - 1
			index[category.ID] = pos
		}

		if subID != nil {
			categories[pos].Subcategories = append(categories[pos].Subcategories, models.Subcategory{
				ID:         *subID,
				CategoryID: *subCategoryID,
				Name:       *subName,
			})
		}
	}

	return categories, rows.Err()
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, icon = $2, image_url = $3, coming_soon = $4
		WHERE id = $5`

	result, err := r.DB.ExecContext(dbCtx, query, category.Name, category.Icon,
		category.ImageURL, category.ComingSoon, category.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *categoryRepository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO subcategories (category_id, name)
		VALUES ($1, $2)
		RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, sub.CategoryID, sub.Name).Scan(&sub.ID)
}

func (r *categoryRepository) GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	sub := &models.Subcategory{}

	query := `SELECT id, category_id, name FROM subcategories WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&sub.ID, &sub.CategoryID, &sub.Name)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *categoryRepository) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	return r.listSubcategories(ctx, `SELECT id, category_id, name FROM subcategories ORDER BY name`)
}

func (r *categoryRepository) ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	return r.listSubcategories(ctx,
		`SELECT id, category_id, name FROM subcategories WHERE category_id = $1 ORDER BY name`, categoryID)
}

func (r *categoryRepository) listSubcategories(ctx context.Context, query string, args ...any) ([]models.Subcategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	subs := []models.Subcategory{}

	for rows.Next() {
		var sub models.Subcategory

		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name); err != nil {
			return nil, err
		}

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *categoryRepository) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE subcategories SET category_id = $1, name = $2 WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, sub.CategoryID, sub.Name, sub.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *categoryRepository) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}
