package handler

import (
	"net/http"

	"github.com/sosmedia/portfolio-api/internal/auth"
	"github.com/sosmedia/portfolio-api/internal/domain"
	"go.uber.org/zap"
)

// allPermissions is the full permission catalog, in display order
var allPermissions = []domain.Permission{
	domain.PermCreateOpportunity,
	domain.PermViewOwnOpportunity,
	domain.PermChangeOwnOpportunity,
	domain.PermViewUnitOpportunity,
	domain.PermChangeUnitOpportunity,
	domain.PermApproveOpportunity,
	domain.PermViewAllOpportunities,
	domain.PermChangeAllOpportunity,
	domain.PermManageCatalog,
	domain.PermManageFiscalYears,
}

type AuthHandler struct {
	logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the current authenticated user with role info
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, domain.UserDTO{
		ID:          userCtx.UserID,
		Email:       userCtx.Email,
		DisplayName: userCtx.DisplayName,
		Role:        userCtx.Role,
		IsActive:    true,
	})
}

// Permissions godoc
// @Summary Get current user's permissions
// @Description Returns the permissions granted to the current user's role
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/permissions [get]
func (h *AuthHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	granted := make([]domain.Permission, 0, len(allPermissions))
	for _, p := range allPermissions {
		if userCtx.Role.Grants(p) {
			granted = append(granted, p)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"role":        userCtx.Role,
		"permissions": granted,
	})
}
