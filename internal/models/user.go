package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserRole string

type UserStatus string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleSuperUser UserRole = "super_user"

	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// Elevated reports whether the role may perform administrative actions.
func (r UserRole) Elevated() bool {
	return r == RoleAdmin || r == RoleSuperUser
}

type User struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	FullName      string     `json:"full_name" validate:"required"`
	PasswordHash  string     `json:"-"`
	Role          UserRole   `json:"role"`
	Status        UserStatus `json:"status"`
	RegisterTime  time.Time  `json:"register_time"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
	User           *User  `json:"user,omitempty"`
}

type UpdateUserRequest struct {
	Username *string     `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string     `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string     `json:"full_name,omitempty"`
	Role     *UserRole   `json:"role,omitempty" validate:"omitempty,oneof=user admin super_user"`
	Status   *UserStatus `json:"status,omitempty" validate:"omitempty,oneof=active banned"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=8"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Claims is the resolved identity carried by a bearer token. Downstream
// services trust these fields and do not re-validate them against storage.
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Email  string     `json:"email"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
	jwt.RegisteredClaims
}
