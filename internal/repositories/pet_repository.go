package repository

import (
	"context"
	"database/sql"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type PetRepository interface {
	CreatePet(ctx context.Context, pet *models.Pet) error
	GetPetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	ListPets(ctx context.Context) ([]models.Pet, error)
	UpdatePet(ctx context.Context, pet *models.Pet) error
	DeletePet(ctx context.Context, id uuid.UUID) error

	CreateProfile(ctx context.Context, profile *models.PetProfile) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*models.PetProfile, error)
	ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]models.PetProfile, error)
	UpdateProfile(ctx context.Context, profile *models.PetProfile) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

type petRepository struct {
	DB *sql.DB
}

func NewPetRepo(db *sql.DB) PetRepository {
	return &petRepository{DB: db}
}

func (r *petRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO pets (pet_type) VALUES ($1) RETURNING id`

	return r.DB.QueryRowContext(dbCtx, query, pet.PetType).Scan(&pet.ID)
}

func (r *petRepository) GetPetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pet := &models.Pet{}

	err := r.DB.QueryRowContext(dbCtx, `SELECT id, pet_type FROM pets WHERE id = $1`, id).
		Scan(&pet.ID, &pet.PetType)
	if err != nil {
		return nil, err
	}

	return pet, nil
}

func (r *petRepository) ListPets(ctx context.Context) ([]models.Pet, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, pet_type FROM pets ORDER BY pet_type`)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	pets := []models.Pet{}

	for rows.Next() {
		var pet models.Pet

		if err := rows.Scan(&pet.ID, &pet.PetType); err != nil {
			return nil, err
		}

		pets = append(pets, pet)
	}

	return pets, rows.Err()
}

func (r *petRepository) UpdatePet(ctx context.Context, pet *models.Pet) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE pets SET pet_type = $1 WHERE id = $2`, pet.PetType, pet.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *petRepository) DeletePet(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

const profileColumns = `p.id, p.user_id, p.pet_name, p.pet_type, p.breed, p.age,
	p.image_url, p.notes, p.created_at, COALESCE(u.username, '')`

func (r *petRepository) CreateProfile(ctx context.Context, profile *models.PetProfile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO pet_profiles (user_id, pet_name, pet_type, breed, age, image_url, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	return r.DB.QueryRowContext(dbCtx, query, profile.UserID, profile.PetName, profile.PetType,
		profile.Breed, profile.Age, profile.ImageURL, profile.Notes).
		Scan(&profile.ID, &profile.CreatedAt)
}

func (r *petRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*models.PetProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + profileColumns + `
		FROM pet_profiles p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	profile := &models.PetProfile{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&profile.ID, &profile.UserID,
		&profile.PetName, &profile.PetType, &profile.Breed, &profile.Age, &profile.ImageURL,
		&profile.Notes, &profile.CreatedAt, &profile.Username)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *petRepository) ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]models.PetProfile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + profileColumns + `
		FROM pet_profiles p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	profiles := []models.PetProfile{}

	for rows.Next() {
		var profile models.PetProfile

		err := rows.Scan(&profile.ID, &profile.UserID, &profile.PetName, &profile.PetType,
			&profile.Breed, &profile.Age, &profile.ImageURL, &profile.Notes,
			&profile.CreatedAt, &profile.Username)
		if err != nil {
			return nil, err
		}

		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

func (r *petRepository) UpdateProfile(ctx context.Context, profile *models.PetProfile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE pet_profiles SET pet_name = $1, breed = $2, age = $3, image_url = $4, notes = $5
		WHERE id = $6`

	result, err := r.DB.ExecContext(dbCtx, query, profile.PetName, profile.Breed, profile.Age,
		profile.ImageURL, profile.Notes, profile.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *petRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM pet_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}
