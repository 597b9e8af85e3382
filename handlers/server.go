package handlers

import (
	"net/http"
	"os"

	"github.com/sitewave/order-api-go/monitoring"
	"github.com/sitewave/order-api-go/services"
	"github.com/sitewave/order-api-go/utils"
	"gorm.io/gorm"
)

// APIServer manages all API routes and handlers
type APIServer struct {
	packageService      *services.PackageService
	orderService        *services.OrderService
	subscriptionService *services.SubscriptionService
	paymentService      *services.PaymentService
	domainService       *services.DomainService
	secretService       *services.SecretService
	profileService      *services.ProfileService
	adminService        *services.AdminService
}

// NewAPIServer creates a new API server instance with all services wired
func NewAPIServer(db *gorm.DB) *APIServer {
	secretService := services.NewSecretService(db)
	subscriptionService := services.NewSubscriptionService(db)
	domainService := services.NewDomainService(db,
		os.Getenv("REGISTRAR_API_URL"),
		os.Getenv("REGISTRAR_API_KEY"))

	return &APIServer{
		packageService:      services.NewPackageService(db),
		orderService:        services.NewOrderService(db, domainService),
		subscriptionService: subscriptionService,
		paymentService:      services.NewPaymentService(db, secretService, subscriptionService),
		domainService:       domainService,
		secretService:       secretService,
		profileService:      services.NewProfileService(db),
		adminService:        services.NewAdminService(db),
	}
}

// DomainService returns the domain service instance (exposed for transport
// injection in tests)
func (s *APIServer) DomainService() *services.DomainService {
	return s.domainService
}

// SetupRoutes configures all API routes
func (s *APIServer) SetupRoutes(mux *http.ServeMux) {
	route := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, monitoring.InstrumentRoute(pattern, utils.PanicRecoveryMiddleware(handler)))
	}

	// Catalog routes
	route("/packages", s.handlePackages)
	route("/domains/suggestions", s.handleDomainSuggestions)

	// Order routes
	route("/orders", s.handleOrders)
	route("/orders/", s.handleOrderByID)

	// Account routes
	route("/subscriptions", s.handleSubscriptions)
	route("/profile", s.handleProfile)

	// Payment gateway webhook routes
	route("/webhooks/midtrans", s.handleMidtransWebhook)
	route("/webhooks/xendit", s.handleXenditWebhook)

	// Admin routes
	route("/admin/statistics", s.handleAdminStatistics)
	route("/admin/packages", s.handleAdminPackages)
	route("/admin/packages/", s.handleAdminPackageByID)
	route("/admin/secrets", s.handleAdminSecrets)
	route("/admin/secrets/", s.handleAdminSecretByGateway)
	route("/admin/domain-pricing", s.handleAdminDomainPricing)
	route("/admin/domain-pricing/", s.handleAdminDomainPricingByTLD)
}
