package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"github.com/sitewave/order-api-go/utils"
)

// respondServiceError writes a service-layer error with its mapped HTTP
// status. Internal details are logged, not leaked.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apierrors.HTTPStatusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "path", r.URL.Path, "method", r.Method)
		utils.RespondWithError(w, status, "Internal server error")
		return
	}
	utils.RespondWithError(w, status, err.Error())
}

// authenticatedUser extracts the authenticated user from the request
// context, writing a 401 response when absent
func authenticatedUser(w http.ResponseWriter, r *http.Request) (*models.AuthenticatedUser, bool) {
	user, ok := utils.GetAuthenticatedUser(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}

// requireAdmin extracts the authenticated user and verifies the admin role,
// writing the error response when the check fails
func (s *APIServer) requireAdmin(w http.ResponseWriter, r *http.Request) (*models.AuthenticatedUser, bool) {
	user, ok := authenticatedUser(w, r)
	if !ok {
		return nil, false
	}

	isAdmin, err := s.profileService.HasRole(user.UserID, models.RoleAdmin)
	if err != nil {
		respondServiceError(w, r, err)
		return nil, false
	}
	if !isAdmin {
		slog.Warn("Admin route denied", "userId", user.UserID, "path", r.URL.Path)
		utils.RespondWithError(w, http.StatusForbidden, "Admin role required")
		return nil, false
	}
	return user, true
}

// isAdmin reports whether the user has the admin role, swallowing lookup
// errors as non-admin
func (s *APIServer) isAdmin(userID string) bool {
	admin, err := s.profileService.HasRole(userID, models.RoleAdmin)
	if err != nil {
		slog.Warn("Role lookup failed, treating as non-admin", "userId", userID, "error", err)
		return false
	}
	return admin
}
