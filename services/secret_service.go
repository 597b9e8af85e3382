package services

import (
	"errors"
	"sync"
	"time"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// secretCacheTTL bounds how long a gateway secret is served from memory
// before being re-read from the database.
const secretCacheTTL = 5 * time.Minute

type cachedSecret struct {
	value     string
	fetchedAt time.Time
}

// SecretService manages integration secrets for the payment gateways
type SecretService struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]cachedSecret
}

// NewSecretService creates a new secret service
func NewSecretService(db *gorm.DB) *SecretService {
	return &SecretService{
		db:    db,
		cache: make(map[string]cachedSecret),
	}
}

// GetActiveSecret returns the active secret value for a gateway
func (s *SecretService) GetActiveSecret(gateway string) (string, error) {
	s.mu.RLock()
	cached, ok := s.cache[gateway]
	s.mu.RUnlock()
	if ok && time.Since(cached.fetchedAt) < secretCacheTTL {
		return cached.value, nil
	}

	var secret models.IntegrationSecret
	err := s.db.First(&secret, "gateway_name = ? AND active = ?", gateway, true).Error
	if err != nil {
		return "", apierrors.FromGormError(err, "integration secret", "fetch secret")
	}

	s.mu.Lock()
	s.cache[gateway] = cachedSecret{value: secret.SecretValue, fetchedAt: time.Now()}
	s.mu.Unlock()

	return secret.SecretValue, nil
}

// UpsertSecret creates or replaces the secret for a gateway
func (s *SecretService) UpsertSecret(gateway string, req *models.UpsertSecretRequest) (*models.IntegrationSecretResponse, error) {
	if !models.IsValidGateway(gateway) {
		return nil, apierrors.ValidationError("unsupported gateway: " + gateway)
	}
	if req.SecretValue == "" {
		return nil, apierrors.ValidationError("secretValue is required")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var secret models.IntegrationSecret
	err := s.db.Where("gateway_name = ?", gateway).First(&secret).Error
	switch {
	case err == nil:
		secret.SecretValue = req.SecretValue
		secret.Active = active
		if err := s.db.Save(&secret).Error; err != nil {
			return nil, apierrors.DatabaseError("update secret", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		secret = models.IntegrationSecret{
			GatewayName: gateway,
			SecretValue: req.SecretValue,
			Active:      active,
		}
		if err := s.db.Create(&secret).Error; err != nil {
			return nil, apierrors.DatabaseError("create secret", err)
		}
	default:
		return nil, apierrors.DatabaseError("fetch secret", err)
	}

	// Stale cache entries would keep verifying webhooks against the old key
	s.mu.Lock()
	delete(s.cache, gateway)
	s.mu.Unlock()

	return toSecretResponse(&secret), nil
}

// ListSecrets returns all configured secrets with values redacted
func (s *SecretService) ListSecrets() ([]models.IntegrationSecretResponse, error) {
	var secrets []models.IntegrationSecret
	if err := s.db.Order("gateway_name").Find(&secrets).Error; err != nil {
		return nil, apierrors.DatabaseError("list secrets", err)
	}

	responses := make([]models.IntegrationSecretResponse, len(secrets))
	for i := range secrets {
		responses[i] = *toSecretResponse(&secrets[i])
	}
	return responses, nil
}

func toSecretResponse(secret *models.IntegrationSecret) *models.IntegrationSecretResponse {
	return &models.IntegrationSecretResponse{
		GatewayName: secret.GatewayName,
		Active:      secret.Active,
		UpdatedAt:   secret.UpdatedAt.Format(time.RFC3339),
	}
}
