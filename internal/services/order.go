package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

// Delivery pricing: orders below the threshold pay a flat fee, orders at or
// above it ship free.
const (
	FlatDeliveryFee       = 300.0
	FreeDeliveryThreshold = 2000.0
)

type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	authorizer  authz.Authorizer
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, authorizer authz.Authorizer) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, productRepo: productRepo, authorizer: authorizer}
}

// CreateOrder turns the user's cart into an order. Line items freeze the
// unit price, product name and first image at checkout time; cart items
// whose product no longer exists are skipped.
func (s *OrderService) CreateOrder(ctx context.Context, actor *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	if actor.Status == models.UserStatusBanned {
		return nil, errors.ForbiddenStateError("Account is banned")
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.EmptyCartError("Cart is empty").WithError(err)
	}

	cartItems, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart items").WithError(err)
	}

	if len(cartItems) == 0 {
		return nil, errors.EmptyCartError("Cart is empty")
	}

	now := time.Now()
	orderID := uuid.New()

	var subtotal float64

	var items []models.OrderItem

	for _, cartItem := range cartItems {
		product, err := s.productRepo.GetProductByID(ctx, cartItem.ProductID)
		if err != nil {
			// Products removed from the catalog since they were carted are
			// dropped from the order rather than failing the checkout.
			logger.Warn("Skipping cart item with missing product",
				slog.String("productId", cartItem.ProductID.String()))

			continue
		}

		subtotal += product.Price * float64(cartItem.Quantity)

		items = append(items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    product.ID,
			Price:        product.Price,
			Quantity:     cartItem.Quantity,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			CreatedAt:    now,
		})
	}

	deliveryCharges := FlatDeliveryFee
	if subtotal >= FreeDeliveryThreshold {
		deliveryCharges = 0
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeCOD
	}

	order := &models.Order{
		ID:              orderID,
		UserID:          actor.UserID,
		OrderTime:       now,
		PaymentType:     paymentType,
		Status:          models.OrderStatusPending,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		City:            req.City,
		ZipCode:         req.ZipCode,
		Subtotal:        subtotal,
		DeliveryCharges: deliveryCharges,
		Total:           subtotal + deliveryCharges,
		Items:           items,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	for _, item := range items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, errors.DatabaseError("Failed to update inventory").WithError(err)
		}
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		return nil, errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	logger.Info("Order created",
		slog.String("orderId", order.ID.String()),
		slog.Float64("total", order.Total))

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, actor *models.Claims, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !s.authorizer.CanViewOrder(actor, order.UserID) {
		return nil, errors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, actor *models.Claims) ([]models.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, actor.UserID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, actor *models.Claims) ([]models.Order, error) {
	if !s.authorizer.CanManageOrders(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	orders, err := s.orderRepo.ListAllOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, nil
}

func (s *OrderService) ListOrderItems(ctx context.Context, actor *models.Claims, orderID uuid.UUID) ([]models.OrderItem, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !s.authorizer.CanViewOrder(actor, order.UserID) {
		return nil, errors.ForbiddenError("You do not have access to this order")
	}

	items, err := s.orderRepo.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list order items").WithError(err)
	}

	return items, nil
}

// UpdateOrder changes an order's status and/or payment type. Delivered and
// cancelled orders accept no further status change; repeating the current
// status is a no-op so retried requests stay safe. Payment type updates are
// not constrained by the status machine.
func (s *OrderService) UpdateOrder(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, error) {
	if !s.authorizer.CanManageOrders(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if req.Empty() {
		return order, nil
	}

	newStatus := order.Status

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, errors.InvalidStatusError("Unknown order status: " + string(*req.Status))
		}

		if order.Status.Terminal() && *req.Status != order.Status {
			return nil, errors.TerminalStateError("Order is already " + string(order.Status))
		}

		newStatus = *req.Status
	}

	newPaymentType := order.PaymentType
	if req.PaymentType != nil {
		newPaymentType = *req.PaymentType
	}

	if newStatus == order.Status && newPaymentType == order.PaymentType {
		return order, nil
	}

	if err := s.orderRepo.UpdateOrder(ctx, id, newStatus, newPaymentType); err != nil {
		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	order.Status = newStatus
	order.PaymentType = newPaymentType

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageOrders(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return errors.NotFoundError("Order not found").WithError(err)
	}

	return nil
}
