package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, username, email, full_name, password_hash, role, status, register_time, last_login_time`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.Role, &user.Status, &user.RegisterTime, &user.LastLoginTime)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (username, email, full_name, password_hash, role, status, register_time)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, register_time`

	return r.DB.QueryRowContext(dbCtx, query, user.Username, user.Email, user.FullName,
		user.PasswordHash, user.Role, user.Status).Scan(&user.ID, &user.RegisterTime)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUser(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *userRepository) ListUsers(ctx context.Context, role models.UserRole) ([]models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY register_time DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, role)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var users []models.User

	for rows.Next() {
		var user models.User

		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
			&user.PasswordHash, &user.Role, &user.Status, &user.RegisterTime, &user.LastLoginTime)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users SET username = $1, email = $2, full_name = $3, role = $4, status = $5
		WHERE id = $6`

	result, err := r.DB.ExecContext(dbCtx, query, user.Username, user.Email, user.FullName,
		user.Role, user.Status, user.ID)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET password_hash = $1 WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, passwordHash, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET last_login_time = $1 WHERE id = $2`

	_, err := r.DB.ExecContext(dbCtx, query, at, id)

	return err
}

func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// requireRowsAffected maps zero-row writes to sql.ErrNoRows so services can
// translate them into NotFound.
func requireRowsAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
