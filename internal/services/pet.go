package service

import (
	"context"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/google/uuid"
)

type PetService struct {
	petRepo    repository.PetRepository
	authorizer authz.Authorizer
}

func NewPetService(petRepo repository.PetRepository, authorizer authz.Authorizer) *PetService {
	return &PetService{petRepo: petRepo, authorizer: authorizer}
}

func (s *PetService) CreatePet(ctx context.Context, actor *models.Claims, req *models.CreatePetRequest) (*models.Pet, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	pet := &models.Pet{
		ID:      uuid.New(),
		PetType: req.PetType,
	}

	if err := s.petRepo.CreatePet(ctx, pet); err != nil {
		return nil, errors.DatabaseError("Failed to create pet type").WithError(err)
	}

	return pet, nil
}

func (s *PetService) ListPets(ctx context.Context) ([]models.Pet, error) {
	pets, err := s.petRepo.ListPets(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list pet types").WithError(err)
	}

	return pets, nil
}

func (s *PetService) UpdatePet(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdatePetRequest) (*models.Pet, error) {
	if !s.authorizer.CanManageCatalog(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	pet, err := s.petRepo.GetPetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Pet type not found").WithError(err)
	}

	if req.PetType != nil {
		pet.PetType = *req.PetType
	}

	if err := s.petRepo.UpdatePet(ctx, pet); err != nil {
		return nil, errors.DatabaseError("Failed to update pet type").WithError(err)
	}

	return pet, nil
}

func (s *PetService) DeletePet(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageCatalog(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.petRepo.DeletePet(ctx, id); err != nil {
		return errors.NotFoundError("Pet type not found").WithError(err)
	}

	return nil
}

func (s *PetService) CreateProfile(ctx context.Context, userID uuid.UUID, req *models.CreatePetProfileRequest) (*models.PetProfile, error) {
	profile := &models.PetProfile{
		ID:        uuid.New(),
		UserID:    userID,
		PetName:   req.PetName,
		PetType:   req.PetType,
		Breed:     req.Breed,
		Age:       req.Age,
		ImageURL:  req.ImageURL,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	if err := s.petRepo.CreateProfile(ctx, profile); err != nil {
		return nil, errors.DatabaseError("Failed to create pet profile").WithError(err)
	}

	return profile, nil
}

func (s *PetService) ListMyProfiles(ctx context.Context, userID uuid.UUID) ([]models.PetProfile, error) {
	profiles, err := s.petRepo.ListProfilesByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list pet profiles").WithError(err)
	}

	return profiles, nil
}

func (s *PetService) UpdateProfile(ctx context.Context, userID, id uuid.UUID, req *models.UpdatePetProfileRequest) (*models.PetProfile, error) {
	profile, err := s.ownedProfile(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.PetName != nil {
		profile.PetName = *req.PetName
	}

	if req.Breed != nil {
		profile.Breed = *req.Breed
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}

	if req.ImageURL != nil {
		profile.ImageURL = *req.ImageURL
	}

	if req.Notes != nil {
		profile.Notes = *req.Notes
	}

	if err := s.petRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, errors.DatabaseError("Failed to update pet profile").WithError(err)
	}

	return profile, nil
}

func (s *PetService) DeleteProfile(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedProfile(ctx, userID, id); err != nil {
		return err
	}

	if err := s.petRepo.DeleteProfile(ctx, id); err != nil {
		return errors.DatabaseError("Failed to delete pet profile").WithError(err)
	}

	return nil
}

func (s *PetService) ownedProfile(ctx context.Context, userID, id uuid.UUID) (*models.PetProfile, error) {
	profile, err := s.petRepo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Pet profile not found").WithError(err)
	}

	if profile.UserID != userID {
		return nil, errors.ForbiddenError("Pet profile does not belong to you")
	}

	return profile, nil
}
