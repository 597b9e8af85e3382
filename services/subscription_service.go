package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// SubscriptionService handles package entitlements granted after payment
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// ActivateForOrder grants the package entitlement for a paid order inside
// the given transaction. Activation is keyed by order ID: re-delivered
// notifications return the existing entitlement instead of creating a
// second one.
func (s *SubscriptionService) ActivateForOrder(tx *gorm.DB, order *models.Order) (*models.UserPackage, error) {
	var existing models.UserPackage
	err := tx.First(&existing, "order_id = ?", order.OrderID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.DatabaseError("fetch subscription", err)
	}

	var pkg models.Package
	if err := tx.First(&pkg, "package_id = ?", order.PackageID).Error; err != nil {
		return nil, apierrors.FromGormError(err, "package", "fetch package")
	}

	now := time.Now()
	userPackage := models.UserPackage{
		UserPackageID: "sub_" + uuid.New().String(),
		UserID:        order.UserID,
		PackageID:     order.PackageID,
		OrderID:       order.OrderID,
		Status:        models.SubscriptionStatusActive,
		StartsAt:      now,
		ExpiresAt:     now.AddDate(0, pkg.DurationMonths, 0),
	}

	if err := tx.Create(&userPackage).Error; err != nil {
		return nil, apierrors.DatabaseError("create subscription", err)
	}
	return &userPackage, nil
}

// GetSubscriptionsByUser returns a user's entitlements, newest first, with
// the active flag computed against the current time
func (s *SubscriptionService) GetSubscriptionsByUser(userID string) ([]models.SubscriptionResponse, error) {
	var userPackages []models.UserPackage
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&userPackages).Error
	if err != nil {
		return nil, apierrors.DatabaseError("list subscriptions", err)
	}

	now := time.Now()
	responses := make([]models.SubscriptionResponse, len(userPackages))
	for i, up := range userPackages {
		responses[i] = models.SubscriptionResponse{
			UserPackageID: up.UserPackageID,
			UserID:        up.UserID,
			PackageID:     up.PackageID,
			OrderID:       up.OrderID,
			Status:        up.Status,
			Active:        up.IsActive(now),
			StartsAt:      up.StartsAt.Format(time.RFC3339),
			ExpiresAt:     up.ExpiresAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}
