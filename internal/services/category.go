package service

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	authorizer   authz.Authorizer
}

func NewCategoryService(categoryRepo repository.CategoryRepository, authorizer authz.Authorizer) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, authorizer: authorizer}
}

func (s *CategoryService) CreateCategory(ctx context.Context, actor *models.Claims, req *models.CreateCategoryRequest) (*models.Category, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	category := &models.Category{
		ID:         uuid.New(),
		Name:       req.Name,
		Icon:       req.Icon,
		ImageURL:   req.ImageURL,
		ComingSoon: req.ComingSoon,
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}

	if req.ComingSoon != nil {
		category.ComingSoon = *req.ComingSoon
	}

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageCatalog(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return errors.NotFoundError("Category not found").WithError(err)
	}

	return nil
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, actor *models.Claims, req *models.CreateSubcategoryRequest) (*models.Subcategory, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	sub := &models.Subcategory{
		ID:         uuid.New(),
		CategoryID: req.CategoryID,
		Name:       req.Name,
	}

	if err := s.categoryRepo.CreateSubcategory(ctx, sub); err != nil {
		return nil, errors.DatabaseError("Failed to create subcategory").WithError(err)
	}

	return sub, nil
}

func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]models.Subcategory, error) {
	var (
		subs []models.Subcategory
		err  error
	)

	if categoryID != nil {
		subs, err = s.categoryRepo.ListSubcategoriesByCategory(ctx, *categoryID)
	} else {
		subs, err = s.categoryRepo.ListSubcategories(ctx)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to list subcategories").WithError(err)
	}

	return subs, nil
}

func (s *CategoryService) UpdateSubcategory(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	sub, err := s.categoryRepo.GetSubcategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Subcategory not found").WithError(err)
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}

		sub.CategoryID = *req.CategoryID
	}

	if err := s.categoryRepo.UpdateSubcategory(ctx, sub); err != nil {
		return nil, errors.DatabaseError("Failed to update subcategory").WithError(err)
	}

	return sub, nil
}

func (s *CategoryService) DeleteSubcategory(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageCatalog(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.categoryRepo.DeleteSubcategory(ctx, id); err != nil {
		return errors.NotFoundError("Subcategory not found").WithError(err)
	}

	return nil
}
