package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

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

type orderServiceMocks struct {
	orderRepo   *mocks.OrderRepository
	cartRepo    *mocks.CartRepository
	productRepo *mocks.ProductRepository
}

func newOrderService() (*service.OrderService, *orderServiceMocks) {
	m := &orderServiceMocks{
		orderRepo:   new(mocks.OrderRepository),
		cartRepo:    new(mocks.CartRepository),
		productRepo: new(mocks.ProductRepository),
	}

	svc := service.NewOrderService(m.orderRepo, m.cartRepo, m.productRepo, authz.New())

	return svc, m
}

func activeClaims(userID uuid.UUID) *models.Claims {
	return &models.Claims{UserID: userID, Role: models.RoleUser, Status: models.UserStatusActive}
}

func adminClaims() *models.Claims {
	return &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin, Status: models.UserStatusActive}
}

func shippingRequest() *models.CreateOrderRequest {
	return &models.CreateOrderRequest{
		PaymentType: models.PaymentTypeCOD,
		FirstName:   "Asha",
		LastName:    "Rao",
		Email:       "asha@example.com",
		Phone:       "5550100",
		Address:     "1 Park Lane",
		City:        "Pune",
		ZipCode:     "411001",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Flat Fee Below Threshold", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()
		productID := uuid.New()

		cart := &models.Cart{ID: cartID, UserID: &userID}
		cartItems := []models.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 3},
		}
		product := &models.Product{
			ID:     productID,
			Name:   "Salmon Kibble",
			Price:  500.0,
			Images: []string{"/images/salmon.png"},
		}

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return(cartItems, nil).Once()
		m.productRepo.On("GetProductByID", ctx, productID).Return(product, nil).Once()
		m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		m.productRepo.On("DecrementStock", ctx, productID, 3).Return(nil).Once()
		m.cartRepo.On("DeleteItems", ctx, cartID).Return(nil).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.InDelta(t, 1500.0, order.Subtotal, 1e-9)
		assert.InDelta(t, 300.0, order.DeliveryCharges, 1e-9)
		assert.InDelta(t, 1800.0, order.Total, 1e-9)
		assert.InDelta(t, order.Subtotal+order.DeliveryCharges, order.Total, 1e-9)

		require.Len(t, order.Items, 1)
		assert.Equal(t, "Salmon Kibble", order.Items[0].ProductName)
		assert.Equal(t, "/images/salmon.png", order.Items[0].ProductImage)
		assert.InDelta(t, 500.0, order.Items[0].Price, 1e-9)
		assert.Equal(t, 3, order.Items[0].Quantity)

		m.orderRepo.AssertExpectations(t)
		m.cartRepo.AssertExpectations(t)
		m.productRepo.AssertExpectations(t)
	})

	t.Run("Success - Free Delivery At Threshold", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()
		productID := uuid.New()

		cart := &models.Cart{ID: cartID, UserID: &userID}
		cartItems := []models.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1},
		}
		product := &models.Product{ID: productID, Name: "Cat Tree", Price: 2500.0}

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return(cartItems, nil).Once()
		m.productRepo.On("GetProductByID", ctx, productID).Return(product, nil).Once()
		m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		m.productRepo.On("DecrementStock", ctx, productID, 1).Return(nil).Once()
		m.cartRepo.On("DeleteItems", ctx, cartID).Return(nil).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		require.NoError(t, err)
		assert.InDelta(t, 2500.0, order.Subtotal, 1e-9)
		assert.InDelta(t, 0.0, order.DeliveryCharges, 1e-9)
		assert.InDelta(t, 2500.0, order.Total, 1e-9)

		// A product without images gets the placeholder on the line item.
		assert.Equal(t, "/images/placeholder.png", order.Items[0].ProductImage)
	})

	t.Run("Failure - Banned Account", func(t *testing.T) {
		svc, m := newOrderService()
		claims := activeClaims(uuid.New())
		claims.Status = models.UserStatusBanned

		order, err := svc.CreateOrder(ctx, claims, shippingRequest())

		assert.Nil(t, order)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbiddenState, appErr.Code)

		m.cartRepo.AssertNotCalled(t, "GetCartByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - No Cart", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(nil, errors.New("sql: no rows in result set")).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(&models.Cart{ID: cartID, UserID: &userID}, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return([]models.CartItem{}, nil).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)

		m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Missing Product Is Skipped", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()
		goneID := uuid.New()
		keptID := uuid.New()

		cart := &models.Cart{ID: cartID, UserID: &userID}
		cartItems := []models.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: goneID, Quantity: 2},
			{ID: uuid.New(), CartID: cartID, ProductID: keptID, Quantity: 1},
		}
		kept := &models.Product{ID: keptID, Name: "Chew Toy", Price: 350.0}

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return(cartItems, nil).Once()
		m.productRepo.On("GetProductByID", ctx, goneID).Return(nil, errors.New("sql: no rows in result set")).Once()
		m.productRepo.On("GetProductByID", ctx, keptID).Return(kept, nil).Once()
		m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		m.productRepo.On("DecrementStock", ctx, keptID, 1).Return(nil).Once()
		m.cartRepo.On("DeleteItems", ctx, cartID).Return(nil).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		require.NoError(t, err)
		require.Len(t, order.Items, 1)
		assert.Equal(t, keptID, order.Items[0].ProductID)
		assert.InDelta(t, 350.0, order.Subtotal, 1e-9)

		// Stock was decremented only for the product that made it onto the
		// order.
		m.productRepo.AssertNotCalled(t, "DecrementStock", ctx, goneID, mock.Anything)
	})

	t.Run("Failure - Order Insert Fails", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()
		productID := uuid.New()

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(&models.Cart{ID: cartID, UserID: &userID}, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return([]models.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1},
		}, nil).Once()
		m.productRepo.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID, Price: 100}, nil).Once()
		m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(errors.New("insert failed")).Once()

		order, err := svc.CreateOrder(ctx, activeClaims(userID), shippingRequest())

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)

		m.cartRepo.AssertNotCalled(t, "DeleteItems", mock.Anything, mock.Anything)
	})

	t.Run("Default Payment Type Is COD", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		cartID := uuid.New()
		productID := uuid.New()

		m.cartRepo.On("GetCartByUserID", ctx, userID).Return(&models.Cart{ID: cartID, UserID: &userID}, nil).Once()
		m.cartRepo.On("ListItems", ctx, cartID).Return([]models.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1},
		}, nil).Once()
		m.productRepo.On("GetProductByID", ctx, productID).Return(&models.Product{ID: productID, Price: 100}, nil).Once()
		m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()
		m.productRepo.On("DecrementStock", ctx, productID, 1).Return(nil).Once()
		m.cartRepo.On("DeleteItems", ctx, cartID).Return(nil).Once()

		req := shippingRequest()
		req.PaymentType = ""

		order, err := svc.CreateOrder(ctx, activeClaims(userID), req)

		require.NoError(t, err)
		assert.Equal(t, models.PaymentTypeCOD, order.PaymentType)
	})
}

func TestOrderService_UpdateOrder(t *testing.T) {
	ctx := context.Background()

	pendingOrder := func(id uuid.UUID) *models.Order {
		return &models.Order{ID: id, UserID: uuid.New(), Status: models.OrderStatusPending, PaymentType: models.PaymentTypeCOD}
	}

	statusPtr := func(s models.OrderStatus) *models.OrderStatus { return &s }

	t.Run("Success - Advance Status", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(pendingOrder(orderID), nil).Once()
		m.orderRepo.On("UpdateOrder", ctx, orderID, models.OrderStatusInProgress, models.PaymentTypeCOD).Return(nil).Once()

		order, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
			Status: statusPtr(models.OrderStatusInProgress),
		})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusInProgress, order.Status)

		m.orderRepo.AssertExpectations(t)
	})

	t.Run("Success - Cancel From Dispatched", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()
		order := pendingOrder(orderID)
		order.Status = models.OrderStatusDispatched

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		m.orderRepo.On("UpdateOrder", ctx, orderID, models.OrderStatusCancelled, models.PaymentTypeCOD).Return(nil).Once()

		updated, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
			Status: statusPtr(models.OrderStatusCancelled),
		})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	})

	t.Run("Failure - Unknown Status", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(pendingOrder(orderID), nil).Once()

		order, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
			Status: statusPtr(models.OrderStatus("shipped")),
		})

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeInvalidStatus, appErr.Code)

		m.orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Terminal Order Cannot Change Status", func(t *testing.T) {
		svc, m := newOrderService()

		for _, terminal := range []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusCancelled} {
			orderID := uuid.New()
			order := pendingOrder(orderID)
			order.Status = terminal

			m.orderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

			updated, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
				Status: statusPtr(models.OrderStatusPending),
			})

			assert.Nil(t, updated)

			var appErr *appErrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, appErrors.ErrCodeTerminalState, appErr.Code)
			assert.Equal(t, 409, appErr.StatusCode)
		}

		m.orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No-Op - Repeating Terminal Status", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()
		order := pendingOrder(orderID)
		order.Status = models.OrderStatusDelivered

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		updated, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
			Status: statusPtr(models.OrderStatusDelivered),
		})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusDelivered, updated.Status)

		m.orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No-Op - Empty Update", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(pendingOrder(orderID), nil).Once()

		updated, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{})

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, updated.Status)

		m.orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Payment Type Change On Terminal Order Is Allowed", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()
		order := pendingOrder(orderID)
		order.Status = models.OrderStatusDelivered
		newPayment := "prepaid"

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		m.orderRepo.On("UpdateOrder", ctx, orderID, models.OrderStatusDelivered, newPayment).Return(nil).Once()

		updated, err := svc.UpdateOrder(ctx, adminClaims(), orderID, &models.UpdateOrderRequest{
			PaymentType: &newPayment,
		})

		require.NoError(t, err)
		assert.Equal(t, newPayment, updated.PaymentType)
		assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	})

	t.Run("Failure - Requires Elevated Role", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		order, err := svc.UpdateOrder(ctx, activeClaims(uuid.New()), orderID, &models.UpdateOrderRequest{})

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		m.orderRepo.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Can View", func(t *testing.T) {
		svc, m := newOrderService()
		userID := uuid.New()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		order, err := svc.GetOrder(ctx, activeClaims(userID), orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("Elevated Role Can View Any Order", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(&models.Order{ID: orderID, UserID: uuid.New()}, nil).Once()

		order, err := svc.GetOrder(ctx, adminClaims(), orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("Stranger Is Rejected", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(&models.Order{ID: orderID, UserID: uuid.New()}, nil).Once()

		order, err := svc.GetOrder(ctx, activeClaims(uuid.New()), orderID)

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, m := newOrderService()
		orderID := uuid.New()

		m.orderRepo.On("GetOrderByID", ctx, orderID).Return(nil, errors.New("sql: no rows in result set")).Once()

		order, err := svc.GetOrder(ctx, adminClaims(), orderID)

		assert.Nil(t, order)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestOrderService_ListAllOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires Elevated Role", func(t *testing.T) {
		svc, m := newOrderService()

		orders, err := svc.ListAllOrders(ctx, activeClaims(uuid.New()))

		assert.Nil(t, orders)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		m.orderRepo.AssertNotCalled(t, "ListAllOrders", mock.Anything)
	})

	t.Run("Super User Allowed", func(t *testing.T) {
		svc, m := newOrderService()
		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleSuperUser, Status: models.UserStatusActive}

		expected := []models.Order{{ID: uuid.New(), OrderTime: time.Now()}}
		m.orderRepo.On("ListAllOrders", ctx).Return(expected, nil).Once()

		orders, err := svc.ListAllOrders(ctx, claims)

		require.NoError(t, err)
		assert.Equal(t, expected, orders)
	})
}
