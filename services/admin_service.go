package services

import (
	"time"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// AdminService provides aggregate views for the admin dashboard
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetStatistics returns order counts by status, the number of currently
// active subscriptions and the summed revenue of paid orders
func (s *AdminService) GetStatistics() (*models.StatisticsResponse, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, apierrors.DatabaseError("count orders", err)
	}

	ordersByStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		ordersByStatus[c.Status] = c.Count
	}

	var activeSubscriptions int64
	err = s.db.Model(&models.UserPackage{}).
		Where("status = ? AND expires_at > ?", models.SubscriptionStatusActive, time.Now()).
		Count(&activeSubscriptions).Error
	if err != nil {
		return nil, apierrors.DatabaseError("count subscriptions", err)
	}

	var paidRevenue int64
	err = s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paidRevenue).Error
	if err != nil {
		return nil, apierrors.DatabaseError("sum revenue", err)
	}

	return &models.StatisticsResponse{
		OrdersByStatus:      ordersByStatus,
		ActiveSubscriptions: activeSubscriptions,
		PaidRevenue:         paidRevenue,
	}, nil
}
