package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID  `json:"id"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	Stock         int        `json:"stock"`
	Images        []string   `json:"images"`
	Weight        string     `json:"weight,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	AgeRange      string     `json:"age_range,omitempty"`
	Rating        float64    `json:"rating"`
	NumReviews    int        `json:"num_reviews"`
	Discount      float64    `json:"discount"`
	IsVisible     bool       `json:"is_visible"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FirstImage returns the first image URL or a placeholder when the product
// has none, for denormalized display on order line items.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}

	return "/images/placeholder.png"
}

type CreateProductRequest struct {
	CategoryID    uuid.UUID  `json:"category_id" validate:"required"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	Name          string     `json:"name" validate:"required,min=3,max=200"`
	Description   string     `json:"description" validate:"required"`
	Price         float64    `json:"price" validate:"required,gte=0"`
	Stock         int        `json:"stock" validate:"gte=0"`
	Images        []string   `json:"images,omitempty"`
	Weight        string     `json:"weight,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	AgeRange      string     `json:"age_range,omitempty"`
	Discount      float64    `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsVisible     *bool      `json:"is_visible,omitempty"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	SubcategoryID *uuid.UUID `json:"subcategory_id,omitempty"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock         *int       `json:"stock,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Weight        *string    `json:"weight,omitempty"`
	Brand         *string    `json:"brand,omitempty"`
	AgeRange      *string    `json:"age_range,omitempty"`
	Rating        *float64   `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	NumReviews    *int       `json:"num_reviews,omitempty" validate:"omitempty,gte=0"`
	Discount      *float64   `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsVisible     *bool      `json:"is_visible,omitempty"`
}

// ProductFilter narrows catalog listings; nil fields are ignored.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Visible       *bool
}
