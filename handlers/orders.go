package handlers

import (
	"net/http"

	"github.com/sitewave/order-api-go/models"
	"github.com/sitewave/order-api-go/monitoring"
	"github.com/sitewave/order-api-go/utils"
)

// handleOrders handles /orders (GET list, POST create)
func (s *APIServer) handleOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		// GET /orders - user's own orders; admins see all
		var (
			orders []models.OrderResponse
			err    error
		)
		if s.isAdmin(user.UserID) {
			orders, err = s.orderService.GetAllOrders()
		} else {
			orders, err = s.orderService.GetOrdersByUser(user.UserID)
		}
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, utils.CreateCollectionResponse(orders, len(orders)))
	case http.MethodPost:
		// POST /orders - create a pending order
		var req models.CreateOrderRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		order, err := s.orderService.CreateOrder(user.UserID, &req)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}

		monitoring.OrdersCreatedTotal.Inc()
		utils.RespondWithSuccess(w, http.StatusCreated, order)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleOrderByID handles GET /orders/{orderId}
func (s *APIServer) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	orderID := utils.ExtractIDFromPathString(r.URL.Path)
	if orderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID is required")
		return
	}

	order, err := s.orderService.GetOrderForUser(orderID, user.UserID, s.isAdmin(user.UserID))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, order)
}

// handleSubscriptions handles GET /subscriptions - the authenticated user's
// entitlements
func (s *APIServer) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	subscriptions, err := s.subscriptionService.GetSubscriptionsByUser(user.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, utils.CreateCollectionResponse(subscriptions, len(subscriptions)))
}

// handleProfile handles GET /profile - profile of the authenticated user,
// created lazily from token claims
func (s *APIServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	profile, err := s.profileService.GetOrCreateProfile(user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, profile)
}
