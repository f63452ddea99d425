package handlers

import (
	"log/slog"
	"net/http"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary	Get my cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	service.CartView
//	@Security	BearerAuth
//	@Router		/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// AddItem godoc
//	@Summary	Add a product to my cart
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.AddCartItemRequest	true	"Product and quantity"
//	@Success	201		{object}	models.CartItem
//	@Security	BearerAuth
//	@Router		/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add cart item", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

// UpdateItem godoc
//	@Summary	Change a cart item's quantity
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Cart item ID (UUID)"	Format(uuid)
//	@Param		update	body		models.UpdateCartItemRequest	true	"New quantity"
//	@Success	200		{object}	models.CartItem
//	@Security	BearerAuth
//	@Router		/cart/items/{id} [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
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

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.cartService.UpdateItem(r.Context(), claims.UserID, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

// RemoveItem godoc
//	@Summary	Remove an item from my cart
//	@Tags		Cart
//	@Param		id	path	string	true	"Cart item ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
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

		if err := h.cartService.RemoveItem(r.Context(), claims.UserID, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ClearCart godoc
//	@Summary	Empty my cart
//	@Tags		Cart
//	@Success	204
//	@Security	BearerAuth
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// GetGuestCart godoc
//	@Summary	Get a guest cart
//	@Tags		GuestCart
//	@Produce	json
//	@Param		guestID	path		string	true	"Guest session ID"
//	@Success	200		{object}	models.GuestCartResponse
//	@Router		/guest-cart/{guestID} [get]
func (h *CartHandler) GetGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestID")
		if guestID == "" {
			response.Error(w, errors.BadRequestError("Guest ID is required"))
			return
		}

		cart, err := h.cartService.GetGuestCart(r.Context(), guestID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// SyncGuestCart godoc
//	@Summary		Replace a guest cart's contents
//	@Description	Replaces the stored guest cart with the client's items, each carrying a product snapshot.
//	@Tags			GuestCart
//	@Accept			json
//	@Produce		json
//	@Param			guestID	path		string							true	"Guest session ID"
//	@Param			cart	body		models.GuestCartSyncRequest	true	"Full cart contents"
//	@Success		200		{object}	models.GuestCartResponse
//	@Router			/guest-cart/{guestID} [post]
func (h *CartHandler) SyncGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestID")
		if guestID == "" {
			response.Error(w, errors.BadRequestError("Guest ID is required"))
			return
		}

		var req models.GuestCartSyncRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.SyncGuestCart(r.Context(), guestID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearGuestCart godoc
//	@Summary	Delete a guest cart's contents
//	@Tags		GuestCart
//	@Param		guestID	path	string	true	"Guest session ID"
//	@Success	204
//	@Router		/guest-cart/{guestID} [delete]
func (h *CartHandler) ClearGuestCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guestID := r.PathValue("guestID")
		if guestID == "" {
			response.Error(w, errors.BadRequestError("Guest ID is required"))
			return
		}

		if err := h.cartService.ClearGuestCart(r.Context(), guestID); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
