package models

import "time"

// Package represents the packages table (website subscription plans)
type Package struct {
	PackageID      string `gorm:"primarykey;column:package_id" json:"packageId"`
	Name           string `gorm:"column:name;not null" json:"name"`
	Description    string `gorm:"column:description" json:"description"`
	Price          int64  `gorm:"column:price;not null" json:"price"`
	Currency       string `gorm:"column:currency;not null;default:IDR" json:"currency"`
	DurationMonths int    `gorm:"column:duration_months;not null" json:"durationMonths"`
	Features       string `gorm:"column:features;type:text" json:"features"`
	Active         bool   `gorm:"column:active;not null;default:true" json:"active"`
	BaseModel
}

// TableName sets the table name for GORM
func (Package) TableName() string {
	return "packages"
}

// Order represents the orders table
type Order struct {
	OrderID       string     `gorm:"primarykey;column:order_id" json:"orderId"`
	UserID        string     `gorm:"column:user_id;not null;index" json:"userId"`
	PackageID     string     `gorm:"column:package_id;not null" json:"packageId"`
	DomainName    string     `gorm:"column:domain_name" json:"domainName"`
	DomainPrice   int64      `gorm:"column:domain_price" json:"domainPrice"`
	Amount        int64      `gorm:"column:amount;not null" json:"amount"`
	Currency      string     `gorm:"column:currency;not null;default:IDR" json:"currency"`
	Status        string     `gorm:"column:status;not null;default:pending;index" json:"status"`
	Gateway       string     `gorm:"column:gateway;not null" json:"gateway"`
	TransactionID string     `gorm:"column:transaction_id" json:"transactionId"`
	PaymentType   string     `gorm:"column:payment_type" json:"paymentType"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paidAt"`
	BaseModel

	// Relationships
	Package Package `gorm:"foreignKey:PackageID;references:PackageID" json:"package"`
}

// TableName sets the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// UserPackage represents the user_packages table (subscription entitlements)
type UserPackage struct {
	UserPackageID string    `gorm:"primarykey;column:user_package_id" json:"userPackageId"`
	UserID        string    `gorm:"column:user_id;not null;index" json:"userId"`
	PackageID     string    `gorm:"column:package_id;not null" json:"packageId"`
	OrderID       string    `gorm:"column:order_id;not null;uniqueIndex" json:"orderId"`
	Status        string    `gorm:"column:status;not null;default:active" json:"status"`
	StartsAt      time.Time `gorm:"column:starts_at;not null" json:"startsAt"`
	ExpiresAt     time.Time `gorm:"column:expires_at;not null" json:"expiresAt"`
	BaseModel
}

// TableName sets the table name for GORM
func (UserPackage) TableName() string {
	return "user_packages"
}

// IsActive reports whether the entitlement should currently be granted
func (up UserPackage) IsActive(now time.Time) bool {
	if up.Status != SubscriptionStatusActive {
		return false
	}
	return now.Before(up.ExpiresAt)
}

// Profile represents the profiles table
type Profile struct {
	UserID      string `gorm:"primarykey;column:user_id" json:"userId"`
	Email       string `gorm:"column:email;not null" json:"email"`
	FullName    string `gorm:"column:full_name" json:"fullName"`
	PhoneNumber string `gorm:"column:phone_number" json:"phoneNumber"`
	BaseModel
}

// TableName sets the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// UserRole represents the user_roles table
type UserRole struct {
	ID     uint   `gorm:"primarykey;column:id" json:"id"`
	UserID string `gorm:"column:user_id;not null;index" json:"userId"`
	Role   string `gorm:"column:role;not null" json:"role"`
	BaseModel
}

// TableName sets the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}

// IntegrationSecret represents the integration_secrets table. Secrets are
// gateway server keys and callback verification tokens used by the webhook
// handlers.
type IntegrationSecret struct {
	ID          uint   `gorm:"primarykey;column:id" json:"id"`
	GatewayName string `gorm:"column:gateway_name;not null;uniqueIndex" json:"gatewayName"`
	SecretValue string `gorm:"column:secret_value;not null" json:"-"`
	Active      bool   `gorm:"column:active;not null;default:true" json:"active"`
	BaseModel
}

// TableName sets the table name for GORM
func (IntegrationSecret) TableName() string {
	return "integration_secrets"
}

// DomainPricingSetting represents the domain_pricing_settings table
type DomainPricingSetting struct {
	ID       uint   `gorm:"primarykey;column:id" json:"id"`
	TLD      string `gorm:"column:tld;not null;uniqueIndex" json:"tld"`
	Price    int64  `gorm:"column:price;not null" json:"price"`
	Currency string `gorm:"column:currency;not null;default:IDR" json:"currency"`
	Enabled  bool   `gorm:"column:enabled;not null;default:true" json:"enabled"`
	BaseModel
}

// TableName sets the table name for GORM
func (DomainPricingSetting) TableName() string {
	return "domain_pricing_settings"
}
