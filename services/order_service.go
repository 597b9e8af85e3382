package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// OrderService handles order intake and retrieval
type OrderService struct {
	db      *gorm.DB
	domains *DomainService
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB, domains *DomainService) *OrderService {
	return &OrderService{db: db, domains: domains}
}

// CreateOrder creates a pending order for a user. The amount is the package
// price plus the price of the optional domain registration.
func (s *OrderService) CreateOrder(userID string, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	if req.PackageID == "" {
		return nil, apierrors.ValidationError("packageId is required")
	}
	if !models.IsValidGateway(req.Gateway) {
		return nil, apierrors.ValidationError("gateway must be one of: midtrans, xendit")
	}

	var pkg models.Package
	if err := s.db.First(&pkg, "package_id = ?", req.PackageID).Error; err != nil {
		return nil, apierrors.FromGormError(err, "package", "fetch package")
	}
	if !pkg.Active {
		return nil, apierrors.ValidationError("package is no longer available")
	}

	var domainPrice int64
	domainName := strings.ToLower(strings.TrimSpace(req.DomainName))
	if domainName != "" {
		pricing, err := s.domains.PricingForDomain(domainName)
		if err != nil {
			return nil, err
		}
		domainPrice = pricing.Price
	}

	order := models.Order{
		OrderID:     "ord_" + uuid.New().String(),
		UserID:      userID,
		PackageID:   pkg.PackageID,
		DomainName:  domainName,
		DomainPrice: domainPrice,
		Amount:      pkg.Price + domainPrice,
		Currency:    pkg.Currency,
		Status:      models.OrderStatusPending,
		Gateway:     req.Gateway,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, apierrors.DatabaseError("create order", err)
	}

	order.Package = pkg
	return toOrderResponse(&order), nil
}

// GetOrderForUser retrieves an order, enforcing that non-admin callers only
// see their own orders. Ownership failures surface as not-found so order IDs
// cannot be probed.
func (s *OrderService) GetOrderForUser(orderID, userID string, isAdmin bool) (*models.OrderResponse, error) {
	var order models.Order
	err := s.db.Preload("Package").First(&order, "order_id = ?", orderID).Error
	if err != nil {
		return nil, apierrors.FromGormError(err, "order", "fetch order")
	}
	if !isAdmin && order.UserID != userID {
		return nil, apierrors.NotFoundError("order")
	}
	return toOrderResponse(&order), nil
}

// GetOrdersByUser returns all orders belonging to a user, newest first
func (s *OrderService) GetOrdersByUser(userID string) ([]models.OrderResponse, error) {
	var orders []models.Order
	err := s.db.Preload("Package").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, apierrors.DatabaseError("list orders", err)
	}
	return toOrderResponses(orders), nil
}

// GetAllOrders returns every order, newest first (admin view)
func (s *OrderService) GetAllOrders() ([]models.OrderResponse, error) {
	var orders []models.Order
	err := s.db.Preload("Package").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, apierrors.DatabaseError("list orders", err)
	}
	return toOrderResponses(orders), nil
}

func toOrderResponses(orders []models.Order) []models.OrderResponse {
	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *toOrderResponse(&orders[i])
	}
	return responses
}

func toOrderResponse(order *models.Order) *models.OrderResponse {
	response := &models.OrderResponse{
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		PackageID:     order.PackageID,
		PackageName:   order.Package.Name,
		DomainName:    order.DomainName,
		DomainPrice:   order.DomainPrice,
		Amount:        order.Amount,
		Currency:      order.Currency,
		Status:        order.Status,
		Gateway:       order.Gateway,
		TransactionID: order.TransactionID,
		PaymentType:   order.PaymentType,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.Format(time.RFC3339),
	}
	if order.PaidAt != nil {
		response.PaidAt = order.PaidAt.Format(time.RFC3339)
	}
	return response
}
