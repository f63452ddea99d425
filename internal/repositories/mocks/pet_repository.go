package mocks

import (
	"context"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PetRepository struct {
	mock.Mock
}

func (m *PetRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)

	return args.Error(0)
}

func (m *PetRepository) GetPetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *PetRepository) ListPets(ctx context.Context) ([]models.Pet, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Pet), args.Error(1)
}

func (m *PetRepository) UpdatePet(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)

	return args.Error(0)
}

func (m *PetRepository) DeletePet(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *PetRepository) CreateProfile(ctx context.Context, profile *models.PetProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *PetRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.PetProfile, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PetProfile), args.Error(1)
}

func (m *PetRepository) ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]models.PetProfile, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.PetProfile), args.Error(1)
}

func (m *PetRepository) UpdateProfile(ctx context.Context, profile *models.PetProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *PetRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
