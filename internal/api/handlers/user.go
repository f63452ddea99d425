package handlers

import (
	"log/slog"
	"net/http"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register godoc
//	@Summary	Register a new account
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		models.RegisterRequest	true	"Registration details"
//	@Success	201		{object}	models.User
//	@Failure	409		{object}	response.ErrorResponse	"Email already registered"
//	@Router		/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("Registration failed", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//	@Summary	Log in
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		models.LoginRequest	true	"Login credentials"
//	@Success	200			{object}	models.LoginResponse
//	@Failure	401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure	429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router		/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))

			// A failed login still reports remaining tries or the
			// retry-after delay when the service produced them.
			if result != nil {
				statusCode := http.StatusUnauthorized
				if appErr, ok := errors.IsAppError(err); ok {
					statusCode = appErr.StatusCode
				}

				response.WriteJson(w, statusCode, result)

				return
			}

			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// Me godoc
//	@Summary	Get my profile
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	models.User
//	@Security	BearerAuth
//	@Router		/users/me [get]
func (h *UserHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// ListUsers godoc
//	@Summary	List users (admin)
//	@Tags		Users
//	@Produce	json
//	@Param		role	query	string	false	"Filter by role"
//	@Success	200		{array}	models.User
//	@Security	BearerAuth
//	@Router		/users [get]
func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		role := models.UserRole(r.URL.Query().Get("role"))

		users, err := h.userService.ListUsers(r.Context(), claims, role)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

// UpdateUser godoc
//	@Summary	Update a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User ID (UUID)"	Format(uuid)
//	@Param		update	body		models.UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	models.User
//	@Security	BearerAuth
//	@Router		/users/{id} [put]
func (h *UserHandler) UpdateUser() http.HandlerFunc {
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

		var req models.UpdateUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.UpdateUser(r.Context(), claims, id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// DeleteUser godoc
//	@Summary	Delete a user (admin)
//	@Tags		Users
//	@Param		id	path	string	true	"User ID (UUID)"	Format(uuid)
//	@Success	204
//	@Security	BearerAuth
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser() http.HandlerFunc {
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

		if err := h.userService.DeleteUser(r.Context(), claims, id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ChangePassword godoc
//	@Summary	Change my password
//	@Tags		Users
//	@Accept		json
//	@Success	204
//	@Security	BearerAuth
//	@Router		/users/change-password [post]
func (h *UserHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ChangePassword(r.Context(), claims, &req); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ForgotPassword godoc
//	@Summary	Request a password reset email
//	@Tags		Users
//	@Accept		json
//	@Success	204
//	@Router		/users/forgot-password [post]
func (h *UserHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.ForgotPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ForgotPassword(r.Context(), &req); err != nil {
			logger.Error("Failed to process password reset request", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.NoContent(w)
	}
}

// ResetPassword godoc
//	@Summary	Reset password with an emailed token
//	@Tags		Users
//	@Accept		json
//	@Success	204
//	@Failure	401	{object}	response.ErrorResponse	"Invalid or expired reset token"
//	@Router		/users/reset-password [post]
func (h *UserHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ResetPassword(r.Context(), &req); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
