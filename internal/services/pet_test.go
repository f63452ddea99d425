package service_test

import (
	"context"
	"errors"
	"testing"

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

func newPetService() (*service.PetService, *mocks.PetRepository) {
	petRepo := new(mocks.PetRepository)

	return service.NewPetService(petRepo, authz.New()), petRepo
}

func TestPetService_CreatePet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, petRepo := newPetService()

		petRepo.On("CreatePet", ctx, mock.AnythingOfType("*models.Pet")).Return(nil).Once()

		pet, err := svc.CreatePet(ctx, adminClaims(), &models.CreatePetRequest{PetType: "Ferret"})

		require.NoError(t, err)
		assert.Equal(t, "Ferret", pet.PetType)
		assert.NotEqual(t, uuid.Nil, pet.ID)
	})

	t.Run("Failure - Requires Admin", func(t *testing.T) {
		svc, petRepo := newPetService()

		pet, err := svc.CreatePet(ctx, activeClaims(uuid.New()), &models.CreatePetRequest{PetType: "Ferret"})

		assert.Nil(t, pet)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		petRepo.AssertNotCalled(t, "CreatePet", mock.Anything, mock.Anything)
	})
}

func TestPetService_UpdatePet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, petRepo := newPetService()
		petID := uuid.New()
		newType := "Guinea Pig"

		petRepo.On("GetPetByID", ctx, petID).Return(&models.Pet{ID: petID, PetType: "Hamster"}, nil).Once()
		petRepo.On("UpdatePet", ctx, mock.AnythingOfType("*models.Pet")).Return(nil).Once()

		pet, err := svc.UpdatePet(ctx, adminClaims(), petID, &models.UpdatePetRequest{PetType: &newType})

		require.NoError(t, err)
		assert.Equal(t, "Guinea Pig", pet.PetType)
	})

	t.Run("Failure - Unknown Pet Type", func(t *testing.T) {
		svc, petRepo := newPetService()
		petID := uuid.New()
		newType := "Guinea Pig"

		petRepo.On("GetPetByID", ctx, petID).Return(nil, errors.New("no rows")).Once()

		pet, err := svc.UpdatePet(ctx, adminClaims(), petID, &models.UpdatePetRequest{PetType: &newType})

		assert.Nil(t, pet)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Requires Admin", func(t *testing.T) {
		svc, petRepo := newPetService()
		newType := "Guinea Pig"

		pet, err := svc.UpdatePet(ctx, activeClaims(uuid.New()), uuid.New(), &models.UpdatePetRequest{PetType: &newType})

		assert.Nil(t, pet)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		petRepo.AssertNotCalled(t, "GetPetByID", mock.Anything, mock.Anything)
	})
}

func TestPetService_DeletePet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, petRepo := newPetService()
		petID := uuid.New()

		petRepo.On("DeletePet", ctx, petID).Return(nil).Once()

		require.NoError(t, svc.DeletePet(ctx, adminClaims(), petID))
		petRepo.AssertExpectations(t)
	})

	t.Run("Failure - Requires Admin", func(t *testing.T) {
		svc, petRepo := newPetService()

		err := svc.DeletePet(ctx, activeClaims(uuid.New()), uuid.New())

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		petRepo.AssertNotCalled(t, "DeletePet", mock.Anything, mock.Anything)
	})
}

func TestPetService_Profiles(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("CreateProfile Success", func(t *testing.T) {
		svc, petRepo := newPetService()

		petRepo.On("CreateProfile", ctx, mock.AnythingOfType("*models.PetProfile")).Return(nil).Once()

		profile, err := svc.CreateProfile(ctx, userID, &models.CreatePetProfileRequest{
			PetName: "Biscuit",
			PetType: "Dog",
			Breed:   "Beagle",
			Age:     "3 years",
		})

		require.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, "Biscuit", profile.PetName)
	})

	t.Run("UpdateProfile Success", func(t *testing.T) {
		svc, petRepo := newPetService()
		profileID := uuid.New()
		newName := "Waffle"

		petRepo.On("GetProfileByID", ctx, profileID).
			Return(&models.PetProfile{ID: profileID, UserID: userID, PetName: "Biscuit"}, nil).Once()
		petRepo.On("UpdateProfile", ctx, mock.AnythingOfType("*models.PetProfile")).Return(nil).Once()

		profile, err := svc.UpdateProfile(ctx, userID, profileID, &models.UpdatePetProfileRequest{PetName: &newName})

		require.NoError(t, err)
		assert.Equal(t, "Waffle", profile.PetName)
	})

	t.Run("Failure - Someone Else's Profile", func(t *testing.T) {
		svc, petRepo := newPetService()
		profileID := uuid.New()
		newName := "Waffle"

		petRepo.On("GetProfileByID", ctx, profileID).
			Return(&models.PetProfile{ID: profileID, UserID: uuid.New(), PetName: "Biscuit"}, nil).Once()

		profile, err := svc.UpdateProfile(ctx, userID, profileID, &models.UpdatePetProfileRequest{PetName: &newName})

		assert.Nil(t, profile)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		petRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Delete Someone Else's Profile", func(t *testing.T) {
		svc, petRepo := newPetService()
		profileID := uuid.New()

		petRepo.On("GetProfileByID", ctx, profileID).
			Return(&models.PetProfile{ID: profileID, UserID: uuid.New()}, nil).Once()

		err := svc.DeleteProfile(ctx, userID, profileID)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)

		petRepo.AssertNotCalled(t, "DeleteProfile", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Profile", func(t *testing.T) {
		svc, petRepo := newPetService()
		profileID := uuid.New()

		petRepo.On("GetProfileByID", ctx, profileID).Return(nil, errors.New("no rows")).Once()

		err := svc.DeleteProfile(ctx, userID, profileID)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("ListMyProfiles Success", func(t *testing.T) {
		svc, petRepo := newPetService()

		petRepo.On("ListProfilesByUser", ctx, userID).
			Return([]models.PetProfile{{ID: uuid.New(), UserID: userID, PetName: "Biscuit"}}, nil).Once()

		profiles, err := svc.ListMyProfiles(ctx, userID)

		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Biscuit", profiles[0].PetName)
	})
}
