package services

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sitewave/order-api-go/models"
	"github.com/sitewave/order-api-go/monitoring"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// PaymentService reconciles gateway webhook notifications with orders and
// activates subscriptions on confirmed payment.
type PaymentService struct {
	db            *gorm.DB
	secrets       *SecretService
	subscriptions *SubscriptionService
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, secrets *SecretService, subscriptions *SubscriptionService) *PaymentService {
	return &PaymentService{db: db, secrets: secrets, subscriptions: subscriptions}
}

// VerifyMidtransSignature checks the notification signature:
// sha512hex(order_id + status_code + gross_amount + serverKey)
func VerifyMidtransSignature(n *models.MidtransNotification, serverKey string) bool {
	payload := n.OrderID + n.StatusCode + n.GrossAmount + serverKey
	sum := sha512.Sum512([]byte(payload))
	expected := hex.EncodeToString(sum[:])
	provided := strings.ToLower(n.SignatureKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// MapMidtransStatus maps a Midtrans transaction status (and fraud status for
// captures) to an order status
func MapMidtransStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return models.OrderStatusChallenge
		}
		return models.OrderStatusPaid
	case "settlement":
		return models.OrderStatusPaid
	case "pending":
		return models.OrderStatusPending
	case "deny":
		return models.OrderStatusFailed
	case "cancel":
		return models.OrderStatusCanceled
	case "expire":
		return models.OrderStatusExpired
	default:
		return models.OrderStatusFailed
	}
}

// ProcessMidtransNotification verifies and applies a Midtrans transaction
// notification. Unknown orders and terminal orders yield an ignored result
// so the handler can acknowledge with 200 and stop gateway retries.
func (s *PaymentService) ProcessMidtransNotification(n *models.MidtransNotification) (*models.WebhookResult, error) {
	serverKey, err := s.secrets.GetActiveSecret(models.GatewayMidtrans)
	if err != nil {
		return nil, apierrors.InternalError("midtrans server key is not configured")
	}

	if !VerifyMidtransSignature(n, serverKey) {
		return nil, apierrors.UnauthorizedError("invalid notification signature")
	}

	var order models.Order
	err = s.db.First(&order, "order_id = ?", n.OrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Warn("Notification for unknown order acknowledged", "gateway", models.GatewayMidtrans, "orderId", n.OrderID)
		return &models.WebhookResult{OrderID: n.OrderID, Ignored: true, Message: "order not found"}, nil
	}
	if err != nil {
		return nil, apierrors.DatabaseError("fetch order", err)
	}

	if !grossAmountMatches(n.GrossAmount, order.Amount) {
		return nil, apierrors.ValidationError("gross amount does not match order amount")
	}

	if models.IsTerminalOrderStatus(order.Status) {
		return &models.WebhookResult{
			OrderID:     order.OrderID,
			OrderStatus: order.Status,
			Ignored:     true,
			Message:     "order already in terminal state",
		}, nil
	}

	newStatus := MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	return s.applyStatus(&order, newStatus, n.TransactionID, n.PaymentType)
}

// ProcessXenditCallback verifies and applies a Xendit invoice callback. The
// caller must pass the value of the x-callback-token header.
func (s *PaymentService) ProcessXenditCallback(callbackToken string, cb *models.XenditInvoiceCallback) (*models.WebhookResult, error) {
	expectedToken, err := s.secrets.GetActiveSecret(models.GatewayXendit)
	if err != nil {
		return nil, apierrors.InternalError("xendit callback token is not configured")
	}

	if subtle.ConstantTimeCompare([]byte(expectedToken), []byte(callbackToken)) != 1 {
		return nil, apierrors.ForbiddenError("invalid callback token")
	}

	var order models.Order
	err = s.db.First(&order, "order_id = ?", cb.ExternalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Warn("Callback for unknown order acknowledged", "gateway", models.GatewayXendit, "orderId", cb.ExternalID)
		return &models.WebhookResult{OrderID: cb.ExternalID, Ignored: true, Message: "order not found"}, nil
	}
	if err != nil {
		return nil, apierrors.DatabaseError("fetch order", err)
	}

	var newStatus string
	switch strings.ToUpper(cb.Status) {
	case "PAID", "SETTLED":
		newStatus = models.OrderStatusPaid
	case "EXPIRED":
		newStatus = models.OrderStatusExpired
	default:
		return &models.WebhookResult{
			OrderID:     order.OrderID,
			OrderStatus: order.Status,
			Ignored:     true,
			Message:     "unhandled invoice status: " + cb.Status,
		}, nil
	}

	if newStatus == models.OrderStatusPaid && cb.PaidAmount != order.Amount {
		return nil, apierrors.ValidationError("paid amount does not match order amount")
	}

	if models.IsTerminalOrderStatus(order.Status) {
		return &models.WebhookResult{
			OrderID:     order.OrderID,
			OrderStatus: order.Status,
			Ignored:     true,
			Message:     "order already in terminal state",
		}, nil
	}

	return s.applyStatus(&order, newStatus, cb.ID, cb.PaymentMethod)
}

// applyStatus persists the status transition and, for payments, activates
// the subscription in the same transaction.
func (s *PaymentService) applyStatus(order *models.Order, newStatus, transactionID, paymentType string) (*models.WebhookResult, error) {
	result := &models.WebhookResult{OrderID: order.OrderID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order.Status = newStatus
		if transactionID != "" {
			order.TransactionID = transactionID
		}
		if paymentType != "" {
			order.PaymentType = strings.ToLower(paymentType)
		}
		if newStatus == models.OrderStatusPaid && order.PaidAt == nil {
			now := time.Now()
			order.PaidAt = &now
		}

		if err := tx.Save(order).Error; err != nil {
			return apierrors.DatabaseError("update order", err)
		}

		if newStatus == models.OrderStatusPaid {
			userPackage, err := s.subscriptions.ActivateForOrder(tx, order)
			if err != nil {
				return err
			}
			result.UserPackageID = userPackage.UserPackageID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusPaid {
		monitoring.SubscriptionActivationsTotal.Inc()
	}

	slog.Info("Order reconciled from gateway notification",
		"orderId", order.OrderID,
		"gateway", order.Gateway,
		"status", newStatus,
		"transactionId", order.TransactionID)

	result.OrderStatus = newStatus
	result.Message = "order updated"
	return result, nil
}

// grossAmountMatches compares a Midtrans decimal amount string (e.g.
// "150000.00") against the order amount in whole currency units.
func grossAmountMatches(grossAmount string, orderAmount int64) bool {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(grossAmount), 64)
	if err != nil {
		return false
	}
	return math.Abs(parsed-float64(orderAmount)) < 0.01
}
