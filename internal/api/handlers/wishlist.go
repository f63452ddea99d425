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
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: validator.New()}
}

// AddItem godoc
//	@Summary	Add a product to my wishlist
//	@Tags		Wishlist
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.AddWishlistItemRequest	true	"Product to add"
//	@Success	201		{object}	models.WishlistItem
//	@Failure	409		{object}	response.ErrorResponse	"Already on the wishlist"
//	@Security	BearerAuth
//	@Router		/wishlist [post]
func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddWishlistItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.wishlistService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

// ListMine godoc
//	@Summary	List my wishlist
//	@Tags		Wishlist
//	@Produce	json
//	@Success	200	{array}	models.WishlistItem
//	@Security	BearerAuth
//	@Router		/wishlist [get]
func (h *WishlistHandler) ListMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		items, err := h.wishlistService.ListMine(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// RemoveItem godoc
//	@Summary	Remove a wishlist item
//	@Tags		Wishlist
//	@Param		id	path	string	true	"Wishlist item ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/wishlist/{id} [delete]
func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
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

		if err := h.wishlistService.RemoveItem(r.Context(), claims.UserID, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// RemoveByProduct godoc
//	@Summary	Remove a product from my wishlist
//	@Tags		Wishlist
//	@Param		productID	path	string	true	"Product ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/wishlist/product/{productID} [delete]
func (h *WishlistHandler) RemoveByProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productID")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.wishlistService.RemoveByProduct(r.Context(), claims.UserID, productID); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
