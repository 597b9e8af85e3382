package handlers

import (
	"net/http"

	"github.com/sitewave/order-api-go/models"
	"github.com/sitewave/order-api-go/utils"
)

// handleAdminStatistics handles GET /admin/statistics
func (s *APIServer) handleAdminStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	stats, err := s.adminService.GetStatistics()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, stats)
}

// handleAdminPackages handles POST /admin/packages - create a package
func (s *APIServer) handleAdminPackages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	var req models.CreatePackageRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := s.packageService.CreatePackage(&req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, pkg)
}

// handleAdminPackageByID handles PUT /admin/packages/{packageId}
func (s *APIServer) handleAdminPackageByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	packageID := utils.ExtractIDFromPathString(r.URL.Path)
	if packageID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Package ID is required")
		return
	}

	var req models.UpdatePackageRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := s.packageService.UpdatePackage(packageID, &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, pkg)
}

// handleAdminSecrets handles GET /admin/secrets - list secrets (redacted)
func (s *APIServer) handleAdminSecrets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	secrets, err := s.secretService.ListSecrets()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, utils.CreateCollectionResponse(secrets, len(secrets)))
}

// handleAdminSecretByGateway handles PUT /admin/secrets/{gateway}
func (s *APIServer) handleAdminSecretByGateway(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	gateway := utils.ExtractIDFromPathString(r.URL.Path)
	if gateway == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Gateway name is required")
		return
	}

	var req models.UpsertSecretRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	secret, err := s.secretService.UpsertSecret(gateway, &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, secret)
}

// handleAdminDomainPricing handles GET /admin/domain-pricing
func (s *APIServer) handleAdminDomainPricing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	settings, err := s.domainService.ListDomainPricing()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, utils.CreateCollectionResponse(settings, len(settings)))
}

// handleAdminDomainPricingByTLD handles PUT /admin/domain-pricing/{tld}
func (s *APIServer) handleAdminDomainPricingByTLD(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	tld := utils.ExtractIDFromPathString(r.URL.Path)
	if tld == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "TLD is required")
		return
	}

	var req models.UpsertDomainPricingRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	setting, err := s.domainService.UpsertDomainPricing(tld, &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, setting)
}
