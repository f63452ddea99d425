package handlers

import (
	"net/http"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

// CreateCategory godoc
//	@Summary	Create a category (admin)
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CreateCategoryRequest	true	"Category details"
//	@Success	201			{object}	models.Category
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), claims, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, category)
	}
}

// ListCategories godoc
//	@Summary	List categories with their subcategories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{array}	models.Category
//	@Router		/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// GetCategory godoc
//	@Summary	Get a category by ID
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Category
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// UpdateCategory godoc
//	@Summary	Update a category (admin)
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Category ID (UUID)"	Format(uuid)
//	@Param		update	body		models.UpdateCategoryRequest	true	"Fields to change"
//	@Success	200		{object}	models.Category
//	@Security	BearerAuth
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), claims, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//	@Summary	Delete a category (admin)
//	@Tags		Categories
//	@Param		id	path	string	true	"Category ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// CreateSubcategory godoc
//	@Summary	Create a subcategory (admin)
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		subcategory	body		models.CreateSubcategoryRequest	true	"Subcategory details"
//	@Success	201			{object}	models.Subcategory
//	@Security	BearerAuth
//	@Router		/subcategories [post]
func (h *CategoryHandler) CreateSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateSubcategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sub, err := h.categoryService.CreateSubcategory(r.Context(), claims, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, sub)
	}
}

// ListSubcategories godoc
//	@Summary	List subcategories
//	@Tags		Categories
//	@Produce	json
//	@Param		category_id	query	string	false	"Filter by category"	Format(uuid)
//	@Success	200			{array}	models.Subcategory
//	@Router		/subcategories [get]
func (h *CategoryHandler) ListSubcategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryID *uuid.UUID

		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid category_id format"))
				return
			}

			categoryID = &id
		}

		subs, err := h.categoryService.ListSubcategories(r.Context(), categoryID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, subs)
	}
}

// UpdateSubcategory godoc
//	@Summary	Update a subcategory (admin)
//	@Tags		Categories
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Subcategory ID (UUID)"	Format(uuid)
//	@Param		update	body		models.UpdateSubcategoryRequest	true	"Fields to change"
//	@Success	200		{object}	models.Subcategory
//	@Security	BearerAuth
//	@Router		/subcategories/{id} [put]
func (h *CategoryHandler) UpdateSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateSubcategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		sub, err := h.categoryService.UpdateSubcategory(r.Context(), claims, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sub)
	}
}

// DeleteSubcategory godoc
//	@Summary	Delete a subcategory (admin)
//	@Tags		Categories
//	@Param		id	path	string	true	"Subcategory ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteSubcategory(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
