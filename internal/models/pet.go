package models

import (
	"time"

	"github.com/google/uuid"
)

// Pet is a catalog-level pet type (dogs, cats, birds, fishes).
type Pet struct {
	ID      uuid.UUID `json:"id"`
	PetType string    `json:"pet_type"`
}

type CreatePetRequest struct {
	PetType string `json:"pet_type" validate:"required"`
}

type UpdatePetRequest struct {
	PetType *string `json:"pet_type,omitempty"`
}

// PetProfile is a user's own pet ("My Pets").
type PetProfile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PetName   string    `json:"pet_name"`
	PetType   string    `json:"pet_type"`
	Breed     string    `json:"breed"`
	Age       string    `json:"age"`
	ImageURL  string    `json:"image_url,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username,omitempty"`
}

type CreatePetProfileRequest struct {
	PetName  string `json:"pet_name" validate:"required"`
	PetType  string `json:"pet_type" validate:"required"`
	Breed    string `json:"breed" validate:"required"`
	Age      string `json:"age" validate:"required"`
	ImageURL string `json:"image_url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type UpdatePetProfileRequest struct {
	PetName  *string `json:"pet_name,omitempty"`
	Breed    *string `json:"breed,omitempty"`
	Age      *string `json:"age,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
