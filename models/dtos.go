package models

// CreateOrderRequest is the payload for POST /orders
type CreateOrderRequest struct {
	PackageID  string `json:"packageId"`
	DomainName string `json:"domainName,omitempty"`
	Gateway    string `json:"gateway"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	OrderID       string `json:"orderId"`
	UserID        string `json:"userId"`
	PackageID     string `json:"packageId"`
	PackageName   string `json:"packageName,omitempty"`
	DomainName    string `json:"domainName,omitempty"`
	DomainPrice   int64  `json:"domainPrice,omitempty"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	Gateway       string `json:"gateway"`
	TransactionID string `json:"transactionId,omitempty"`
	PaymentType   string `json:"paymentType,omitempty"`
	PaidAt        string `json:"paidAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// CreatePackageRequest is the payload for POST /admin/packages
type CreatePackageRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          int64  `json:"price"`
	Currency       string `json:"currency"`
	DurationMonths int    `json:"durationMonths"`
	Features       string `json:"features"`
}

// UpdatePackageRequest is the payload for PUT /admin/packages/{packageId}.
// Only non-nil fields are applied.
type UpdatePackageRequest struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Price          *int64  `json:"price,omitempty"`
	Currency       *string `json:"currency,omitempty"`
	DurationMonths *int    `json:"durationMonths,omitempty"`
	Features       *string `json:"features,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// SubscriptionResponse is the API representation of a user package
type SubscriptionResponse struct {
	UserPackageID string `json:"userPackageId"`
	UserID        string `json:"userId"`
	PackageID     string `json:"packageId"`
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	Active        bool   `json:"active"`
	StartsAt      string `json:"startsAt"`
	ExpiresAt     string `json:"expiresAt"`
}

// UpsertSecretRequest is the payload for PUT /admin/secrets/{gateway}
type UpsertSecretRequest struct {
	SecretValue string `json:"secretValue"`
	Active      *bool  `json:"active,omitempty"`
}

// IntegrationSecretResponse is the redacted API representation of a secret
type IntegrationSecretResponse struct {
	GatewayName string `json:"gatewayName"`
	Active      bool   `json:"active"`
	UpdatedAt   string `json:"updatedAt"`
}

// UpsertDomainPricingRequest is the payload for PUT /admin/domain-pricing/{tld}
type UpsertDomainPricingRequest struct {
	Price    int64  `json:"price"`
	Currency string `json:"currency,omitempty"`
	Enabled  *bool  `json:"enabled,omitempty"`
}

// DomainSuggestion is a single domain candidate with availability and pricing
type DomainSuggestion struct {
	Domain       string `json:"domain"`
	TLD          string `json:"tld"`
	Availability string `json:"availability"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
}

// DomainSuggestionResponse is the response for GET /domains/suggestions
type DomainSuggestionResponse struct {
	Keyword     string             `json:"keyword"`
	Suggestions []DomainSuggestion `json:"suggestions"`
}

// ProfileResponse is the API representation of a profile
type ProfileResponse struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Roles       []string `json:"roles"`
	CreatedAt   string   `json:"createdAt"`
}

// StatisticsResponse is the response for GET /admin/statistics
type StatisticsResponse struct {
	OrdersByStatus      map[string]int64 `json:"ordersByStatus"`
	ActiveSubscriptions int64            `json:"activeSubscriptions"`
	PaidRevenue         int64            `json:"paidRevenue"`
}
