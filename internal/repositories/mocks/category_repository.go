package mocks

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CategoryRepository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	args := m.Called(ctx, sub)

	return args.Error(0)
}

func (m *CategoryRepository) GetSubcategoryByID(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *CategoryRepository) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Subcategory), args.Error(1)
}

func (m *CategoryRepository) ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Subcategory, error) {
	args := m.Called(ctx, categoryID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Subcategory), args.Error(1)
}

func (m *CategoryRepository) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	args := m.Called(ctx, sub)

	return args.Error(0)
}

func (m *CategoryRepository) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
