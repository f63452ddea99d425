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

type OrderHandler struct {
	orderService *service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Place an order
//	@Description	Creates an order from the user's current cart items and the provided shipping details.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CreateOrderRequest	true	"Shipping details; line items come from the cart"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		403		{object}	response.ErrorResponse	"Account is banned"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary	Get an order by ID
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Order
//	@Security	BearerAuth
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
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

		order, err := h.orderService.GetOrder(r.Context(), claims, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListMyOrders godoc
//	@Summary	List my orders
//	@Tags		Orders
//	@Produce	json
//	@Success	200	{array}	models.Order
//	@Security	BearerAuth
//	@Router		/orders [get]
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListMyOrders(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListAllOrders godoc
//	@Summary	List all orders (admin)
//	@Tags		Orders
//	@Produce	json
//	@Success	200	{array}	models.Order
//	@Security	BearerAuth
//	@Router		/orders/all [get]
func (h *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListAllOrders(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListOrderItems godoc
//	@Summary	List an order's line items
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{array}	models.OrderItem
//	@Security	BearerAuth
//	@Router		/orders/{id}/items [get]
func (h *OrderHandler) ListOrderItems() http.HandlerFunc {
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

		items, err := h.orderService.ListOrderItems(r.Context(), claims, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// UpdateOrder godoc
//	@Summary		Update an order's status or payment type (admin)
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			update	body		models.UpdateOrderRequest	true	"Fields to change"
//	@Success		200		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Unknown status value"
//	@Failure		409		{object}	response.ErrorResponse	"Order is in a terminal state"
//	@Security		BearerAuth
//	@Router			/orders/{id} [put]
func (h *OrderHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

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

		var req models.UpdateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrder(r.Context(), claims, id, &req)
		if err != nil {
			logger.Warn("Failed to update order",
				slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// DeleteOrder godoc
//	@Summary	Delete an order (admin)
//	@Tags		Orders
//	@Param		id	path	string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
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

		if err := h.orderService.DeleteOrder(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
