package handlers

import (
	"net/http"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PetHandler struct {
	petService *service.PetService
	validator  *validator.Validate
}

func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{petService: petService, validator: validator.New()}
}

// CreatePet godoc
//	@Summary	Add a pet type (admin)
//	@Tags		Pets
//	@Accept		json
//	@Produce	json
//	@Param		pet	body		models.CreatePetRequest	true	"Pet type"
//	@Success	201	{object}	models.Pet
//	@Security	BearerAuth
//	@Router		/pets [post]
func (h *PetHandler) CreatePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreatePetRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		pet, err := h.petService.CreatePet(r.Context(), claims, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, pet)
	}
}

// ListPets godoc
//	@Summary	List pet types
//	@Tags		Pets
//	@Produce	json
//	@Success	200	{array}	models.Pet
//	@Router		/pets [get]
func (h *PetHandler) ListPets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pets, err := h.petService.ListPets(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, pets)
	}
}

// UpdatePet godoc
//	@Summary	Update a pet type (admin)
//	@Tags		Pets
//	@Accept		json
//	@Produce	json
//	@Param		id	path		string					true	"Pet type ID (UUID)"	Format(uuid)
//	@Param		pet	body		models.UpdatePetRequest	true	"Fields to change"
//	@Success	200	{object}	models.Pet
//	@Security	BearerAuth
//	@Router		/pets/{id} [put]
func (h *PetHandler) UpdatePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdatePetRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		pet, err := h.petService.UpdatePet(r.Context(), claims, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, pet)
	}
}

// DeletePet godoc
//	@Summary	Delete a pet type (admin)
//	@Tags		Pets
//	@Param		id	path	string	true	"Pet type ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/pets/{id} [delete]
func (h *PetHandler) DeletePet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.petService.DeletePet(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// CreateProfile godoc
//	@Summary	Add one of my pets
//	@Tags		Pets
//	@Accept		json
//	@Produce	json
//	@Param		profile	body		models.CreatePetProfileRequest	true	"Pet details"
//	@Success	201		{object}	models.PetProfile
//	@Security	BearerAuth
//	@Router		/my-pets [post]
func (h *PetHandler) CreateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreatePetProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.petService.CreateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, profile)
	}
}

// ListMyProfiles godoc
//	@Summary	List my pets
//	@Tags		Pets
//	@Produce	json
//	@Success	200	{array}	models.PetProfile
//	@Security	BearerAuth
//	@Router		/my-pets [get]
func (h *PetHandler) ListMyProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		profiles, err := h.petService.ListMyProfiles(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profiles)
	}
}

// UpdateProfile godoc
//	@Summary	Update one of my pets
//	@Tags		Pets
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Pet profile ID (UUID)"	Format(uuid)
//	@Param		profile	body		models.UpdatePetProfileRequest	true	"Fields to change"
//	@Success	200		{object}	models.PetProfile
//	@Security	BearerAuth
//	@Router		/my-pets/{id} [put]
func (h *PetHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdatePetProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		profile, err := h.petService.UpdateProfile(r.Context(), claims.UserID, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, profile)
	}
}

// DeleteProfile godoc
//	@Summary	Delete one of my pets
//	@Tags		Pets
//	@Param		id	path	string	true	"Pet profile ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/my-pets/{id} [delete]
func (h *PetHandler) DeleteProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.petService.DeleteProfile(r.Context(), claims.UserID, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
