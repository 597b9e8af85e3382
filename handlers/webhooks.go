package handlers

import (
	"net/http"

	"github.com/sitewave/order-api-go/models"
	"github.com/sitewave/order-api-go/monitoring"
	"github.com/sitewave/order-api-go/utils"
)

// webhookOutcome maps a processing result to a metric label
func webhookOutcome(result *models.WebhookResult) string {
	if result.Ignored {
		return "ignored"
	}
	return "processed"
}

// handleMidtransWebhook handles POST /webhooks/midtrans - Midtrans
// transaction status notifications. Unknown orders are acknowledged with
// 200 so the gateway stops retrying; verification failures are rejected.
func (s *APIServer) handleMidtransWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var notification models.MidtransNotification
	if err := utils.ParseJSONRequest(r, &notification); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if notification.OrderID == "" || notification.StatusCode == "" ||
		notification.GrossAmount == "" || notification.SignatureKey == "" ||
		notification.TransactionStatus == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required notification fields")
		return
	}

	result, err := s.paymentService.ProcessMidtransNotification(&notification)
	if err != nil {
		monitoring.WebhookEventsTotal.WithLabelValues(models.GatewayMidtrans, "rejected").Inc()
		respondServiceError(w, r, err)
		return
	}

	monitoring.WebhookEventsTotal.WithLabelValues(models.GatewayMidtrans, webhookOutcome(result)).Inc()
	utils.RespondWithSuccess(w, http.StatusOK, result)
}

// handleXenditWebhook handles POST /webhooks/xendit - Xendit invoice
// callbacks authenticated by the x-callback-token header
func (s *APIServer) handleXenditWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	callbackToken := r.Header.Get("X-Callback-Token")
	if callbackToken == "" {
		utils.RespondWithError(w, http.StatusForbidden, "Missing callback token")
		return
	}

	var callback models.XenditInvoiceCallback
	if err := utils.ParseJSONRequest(r, &callback); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if callback.ExternalID == "" || callback.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required callback fields")
		return
	}

	result, err := s.paymentService.ProcessXenditCallback(callbackToken, &callback)
	if err != nil {
		monitoring.WebhookEventsTotal.WithLabelValues(models.GatewayXendit, "rejected").Inc()
		respondServiceError(w, r, err)
		return
	}

	monitoring.WebhookEventsTotal.WithLabelValues(models.GatewayXendit, webhookOutcome(result)).Inc()
	utils.RespondWithSuccess(w, http.StatusOK, result)
}
