package handlers

import (
	"net/http"

	"github.com/sitewave/order-api-go/utils"
)

// handlePackages handles GET /packages - list active packages for the
// selection UI
func (s *APIServer) handlePackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	packages, err := s.packageService.GetActivePackages()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, utils.CreateCollectionResponse(packages, len(packages)))
}
