package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService *service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary	Add a product to the catalog (admin)
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		models.CreateProductRequest	true	"Product details"
//	@Success	201		{object}	models.Product
//	@Failure	400		{object}	response.ErrorResponse	"Category is marked coming soon"
//	@Security	BearerAuth
//	@Router		/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims, &req)
		if err != nil {
			logger.Warn("Failed to create product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Product
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListProducts godoc
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Param		category_id		query	string	false	"Filter by category"	Format(uuid)
//	@Param		subcategory_id	query	string	false	"Filter by subcategory"	Format(uuid)
//	@Param		visible			query	bool	false	"Filter by visibility"
//	@Success	200				{array}	models.Product
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := &models.ProductFilter{}

		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid category_id format"))
				return
			}

			filter.CategoryID = &id
		}

		if raw := r.URL.Query().Get("subcategory_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid subcategory_id format"))
				return
			}

			filter.SubcategoryID = &id
		}

		if raw := r.URL.Query().Get("visible"); raw != "" {
			visible, err := strconv.ParseBool(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid visible flag"))
				return
			}

			filter.Visible = &visible
		}

		products, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// UpdateProduct godoc
//	@Summary	Update a product (admin)
//	@Tags		Products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Product ID (UUID)"	Format(uuid)
//	@Param		update	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	models.Product
//	@Security	BearerAuth
//	@Router		/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
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

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), claims, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary	Delete a product (admin)
//	@Tags		Products
//	@Param		id	path	string	true	"Product ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
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

		if err := h.productService.DeleteProduct(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
