package handlers

import (
	"net/http"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/utils/response"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard godoc
//	@Summary	Dashboard overview (admin)
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	service.DashboardView
//	@Security	BearerAuth
//	@Router		/admin/dashboard [get]
func (h *AdminHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.adminService.Dashboard(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// OrderStats godoc
//	@Summary	Order counts by status (admin)
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/admin/dashboard/orders [get]
func (h *AdminHandler) OrderStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		stats, err := h.adminService.OrderStats(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}

// UserStats godoc
//	@Summary	User counts (admin)
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	models.UserStats
//	@Security	BearerAuth
//	@Router		/admin/dashboard/users [get]
func (h *AdminHandler) UserStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		stats, err := h.adminService.UserStats(r.Context(), claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
