package service

import (
	"context"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	authorizer   authz.Authorizer
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, authorizer authz.Authorizer) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo, authorizer: authorizer}
}

// CreateProduct adds a product to the catalog. Products cannot be placed in
// a category still marked coming soon.
func (s *ProductService) CreateProduct(ctx context.Context, actor *models.Claims, req *models.CreateProductRequest) (*models.Product, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	if category.ComingSoon {
		return nil, errors.BadRequestError("Cannot add products to a coming soon category")
	}

	if req.SubcategoryID != nil {
		sub, err := s.categoryRepo.GetSubcategoryByID(ctx, *req.SubcategoryID)
		if err != nil {
			return nil, errors.NotFoundError("Subcategory not found").WithError(err)
		}

		if sub.CategoryID != category.ID {
			return nil, errors.BadRequestError("Subcategory does not belong to the category")
		}
	}

	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	product := &models.Product{
		ID:            uuid.New(),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		Images:        req.Images,
		Weight:        req.Weight,
		Brand:         req.Brand,
		AgeRange:      req.AgeRange,
		Discount:      req.Discount,
		IsVisible:     isVisible,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		product.CategoryID = *req.CategoryID
	}

	if req.SubcategoryID != nil {
		product.SubcategoryID = req.SubcategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Images != nil {
		product.Images = req.Images
	}

	if req.Weight != nil {
		product.Weight = *req.Weight
	}

	if req.Brand != nil {
		product.Brand = *req.Brand
	}

	if req.AgeRange != nil {
		product.AgeRange = *req.AgeRange
	}

	if req.Rating != nil {
		product.Rating = *req.Rating
	}

	if req.NumReviews != nil {
		product.NumReviews = *req.NumReviews
	}

	if req.Discount != nil {
		product.Discount = *req.Discount
	}

	if req.IsVisible != nil {
		product.IsVisible = *req.IsVisible
	}

	product.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageCatalog(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	return nil
}
