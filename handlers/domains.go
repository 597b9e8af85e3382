package handlers

import (
	"net/http"

	"github.com/sitewave/order-api-go/utils"
)

// handleDomainSuggestions handles GET /domains/suggestions?q=<keyword>
func (s *APIServer) handleDomainSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	response, err := s.domainService.Suggest(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}
