package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the recognized order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusDispatched,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

const PaymentTypeCOD = "cod"

type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	ProductID    uuid.UUID `json:"product_id"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductImage string    `json:"product_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	OrderTime       time.Time   `json:"order_time"`
	PaymentType     string      `json:"payment_type"`
	Status          OrderStatus `json:"status"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone,omitempty"`
	Address         string      `json:"address"`
	City            string      `json:"city"`
	ZipCode         string      `json:"zip_code"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryCharges float64     `json:"delivery_charges"`
	Total           float64     `json:"total"`
	Items           []OrderItem `json:"items,omitempty"`
}

type CreateOrderRequest struct {
	PaymentType string `json:"payment_type" validate:"omitempty,oneof=cod"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	ZipCode     string `json:"zip_code" validate:"required"`
}

type UpdateOrderRequest struct {
	Status      *OrderStatus `json:"status,omitempty"`
	PaymentType *string      `json:"payment_type,omitempty" validate:"omitempty,oneof=cod"`
}

// Empty reports whether the update carries no field changes at all.
func (r *UpdateOrderRequest) Empty() bool {
	return r.Status == nil && r.PaymentType == nil
}
