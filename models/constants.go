package models

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusChallenge = "challenge"
	OrderStatusFailed    = "failed"
	OrderStatusExpired   = "expired"
	OrderStatusCanceled  = "canceled"
)

// Subscription statuses
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusExpired  = "expired"
	SubscriptionStatusCanceled = "canceled"
)

// Payment gateways
const (
	GatewayMidtrans = "midtrans"
	GatewayXendit   = "xendit"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Domain availability results
const (
	AvailabilityAvailable = "available"
	AvailabilityTaken     = "taken"
	AvailabilityUnknown   = "unknown"
)

// IsTerminalOrderStatus reports whether an order status accepts no further
// gateway transitions. Notifications for terminal orders are acknowledged
// without modification.
func IsTerminalOrderStatus(status string) bool {
	switch status {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusExpired, OrderStatusCanceled:
		return true
	}
	return false
}

// IsValidGateway reports whether the gateway name is supported
func IsValidGateway(gateway string) bool {
	return gateway == GatewayMidtrans || gateway == GatewayXendit
}
