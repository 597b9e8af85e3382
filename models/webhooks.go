package models

// MidtransNotification is the inbound webhook body posted by Midtrans when a
// transaction changes state. Only the fields the reconciliation needs are
// mapped; gross_amount arrives as a decimal string (e.g. "150000.00").
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionTime   string `json:"transaction_time"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	Currency          string `json:"currency"`
}

// XenditInvoiceCallback is the inbound webhook body posted by Xendit when an
// invoice is paid or expires. The caller is authenticated by the
// x-callback-token header, not a body signature.
type XenditInvoiceCallback struct {
	ID            string `json:"id"`
	ExternalID    string `json:"external_id"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	PaidAmount    int64  `json:"paid_amount"`
	PaidAt        string `json:"paid_at"`
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
}

// WebhookResult summarizes the outcome of processing a gateway notification
type WebhookResult struct {
	OrderID       string `json:"orderId"`
	OrderStatus   string `json:"orderStatus,omitempty"`
	UserPackageID string `json:"userPackageId,omitempty"`
	Ignored       bool   `json:"ignored"`
	Message       string `json:"message"`
}
