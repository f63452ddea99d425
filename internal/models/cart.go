package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart belongs to exactly one registered user or one guest session,
// never both. Line items live in their own table and share the cart's
// lifetime.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	GuestID   *string    `json:"guest_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ProductSnapshot is the denormalized product view stored with guest cart
// items, so a guest cart renders without catalog lookups.
type ProductSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"image_url,omitempty"`
}

type CartItem struct {
	ID        uuid.UUID        `json:"id"`
	CartID    uuid.UUID        `json:"cart_id"`
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductSnapshot `json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type GuestCartItem struct {
	Product  ProductSnapshot `json:"product" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
}

type GuestCartSyncRequest struct {
	Items []GuestCartItem `json:"items" validate:"dive"`
}

type GuestCartResponse struct {
	Items []CartItem `json:"items"`
}
