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

type productServiceMocks struct {
	productRepo  *mocks.ProductRepository
	categoryRepo *mocks.CategoryRepository
}

func newProductService() (*service.ProductService, *productServiceMocks) {
	m := &productServiceMocks{
		productRepo:  new(mocks.ProductRepository),
		categoryRepo: new(mocks.CategoryRepository),
	}

	return service.NewProductService(m.productRepo, m.categoryRepo, authz.New()), m
}

func createProductRequest(categoryID uuid.UUID) *models.CreateProductRequest {
	return &models.CreateProductRequest{
		CategoryID:  categoryID,
		Name:        "Grain Free Puppy Kibble",
		Description: "Chicken and rice formula for puppies up to 12 months.",
		Price:       1450,
		Stock:       40,
		Brand:       "Pawsome",
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newProductService()
		category := &models.Category{ID: uuid.New(), Name: "Dog Food"}

		m.categoryRepo.On("GetCategoryByID", ctx, category.ID).Return(category, nil).Once()
		m.productRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := svc.CreateProduct(ctx, adminClaims(), createProductRequest(category.ID))

		require.NoError(t, err)
		assert.Equal(t, category.ID, product.CategoryID)
		assert.True(t, product.IsVisible)

		m.productRepo.AssertExpectations(t)
	})

	t.Run("Failure - Coming Soon Category", func(t *testing.T) {
		svc, m := newProductService()
		category := &models.Category{ID: uuid.New(), Name: "Reptiles", ComingSoon: true}

		m.categoryRepo.On("GetCategoryByID", ctx, category.ID).Return(category, nil).Once()

		product, err := svc.CreateProduct(ctx, adminClaims(), createProductRequest(category.ID))

		assert.Nil(t, product)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

		m.productRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Subcategory From Another Category", func(t *testing.T) {
		svc, m := newProductService()
		category := &models.Category{ID: uuid.New(), Name: "Dog Food"}
		sub := &models.Subcategory{ID: uuid.New(), CategoryID: uuid.New(), Name: "Wet Food"}

		req := createProductRequest(category.ID)
		req.SubcategoryID = &sub.ID

		m.categoryRepo.On("GetCategoryByID", ctx, category.ID).Return(category, nil).Once()
		m.categoryRepo.On("GetSubcategoryByID", ctx, sub.ID).Return(sub, nil).Once()

		product, err := svc.CreateProduct(ctx, adminClaims(), req)

		assert.Nil(t, product)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Requires Admin", func(t *testing.T) {
		svc, m := newProductService()

		product, err := svc.CreateProduct(ctx, activeClaims(uuid.New()), createProductRequest(uuid.New()))

		assert.Nil(t, product)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		m.categoryRepo.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
	})

	t.Run("Hidden Product Stays Hidden", func(t *testing.T) {
		svc, m := newProductService()
		category := &models.Category{ID: uuid.New(), Name: "Dog Food"}
		hidden := false

		req := createProductRequest(category.ID)
		req.IsVisible = &hidden

		m.categoryRepo.On("GetCategoryByID", ctx, category.ID).Return(category, nil).Once()
		m.productRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := svc.CreateProduct(ctx, adminClaims(), req)

		require.NoError(t, err)
		assert.False(t, product.IsVisible)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Partial Update", func(t *testing.T) {
		svc, m := newProductService()
		existing := &models.Product{
			ID:         uuid.New(),
			CategoryID: uuid.New(),
			Name:       "Grain Free Puppy Kibble",
			Price:      1450,
			Stock:      40,
			IsVisible:  true,
		}
		newPrice := 1299.0

		m.productRepo.On("GetProductByID", ctx, existing.ID).Return(existing, nil).Once()
		m.productRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := svc.UpdateProduct(ctx, adminClaims(), existing.ID, &models.UpdateProductRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.InDelta(t, 1299.0, product.Price, 0.001)
		assert.Equal(t, "Grain Free Puppy Kibble", product.Name)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		svc, m := newProductService()
		id := uuid.New()

		m.productRepo.On("GetProductByID", ctx, id).Return(nil, errors.New("not found")).Once()

		product, err := svc.UpdateProduct(ctx, adminClaims(), id, &models.UpdateProductRequest{})

		assert.Nil(t, product)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
