package models

import "github.com/google/uuid"

type Category struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon,omitempty"`
	ImageURL      string        `json:"image_url,omitempty"`
	ComingSoon    bool          `json:"coming_soon"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

type CreateCategoryRequest struct {
	Name       string `json:"name" validate:"required"`
	Icon       string `json:"icon,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	ComingSoon bool   `json:"coming_soon"`
}

type UpdateCategoryRequest struct {
	Name       *string `json:"name,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	ComingSoon *bool   `json:"coming_soon,omitempty"`
}

type CreateSubcategoryRequest struct {
	Name       string    `json:"name" validate:"required"`
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
}

type UpdateSubcategoryRequest struct {
	Name       *string    `json:"name,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}
