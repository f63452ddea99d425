// Package authz centralizes the role/ownership checks that would otherwise
// be duplicated across handlers.
package authz

import (
	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/google/uuid"
)

type Authorizer interface {
	CanViewOrder(actor *models.Claims, ownerID uuid.UUID) bool
	CanManageOrders(actor *models.Claims) bool
	CanManageCatalog(actor *models.Claims) bool
	CanManageUsers(actor *models.Claims) bool
	CanViewDashboard(actor *models.Claims) bool
}

type roleAuthorizer struct{}

func New() Authorizer {
	return roleAuthorizer{}
}

// CanViewOrder allows the order's owner and elevated roles.
func (roleAuthorizer) CanViewOrder(actor *models.Claims, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}

	return actor.UserID == ownerID || actor.Role.Elevated()
}

func (roleAuthorizer) CanManageOrders(actor *models.Claims) bool {
	return actor != nil && actor.Role.Elevated()
}

func (roleAuthorizer) CanManageCatalog(actor *models.Claims) bool {
	return actor != nil && actor.Role.Elevated()
}

func (roleAuthorizer) CanManageUsers(actor *models.Claims) bool {
	return actor != nil && actor.Role.Elevated()
}

func (roleAuthorizer) CanViewDashboard(actor *models.Claims) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}
