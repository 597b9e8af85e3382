package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
	"gorm.io/gorm"
)

// suggestionCacheTTL is how long a suggestion response is served from
// memory. The UI fires a lookup per keystroke; the cache absorbs repeated
// queries the same way the client-side debounce did.
const suggestionCacheTTL = 30 * time.Second

var keywordPattern = regexp.MustCompile(`[^a-z0-9-]+`)

type suggestionCacheEntry struct {
	response  *models.DomainSuggestionResponse
	fetchedAt time.Time
}

// DomainService handles domain availability lookups, suggestions and TLD
// pricing settings.
type DomainService struct {
	db     *gorm.DB
	apiURL string
	apiKey string

	// HTTPClient is exported so tests can inject a mock transport
	HTTPClient *http.Client

	mu    sync.Mutex
	cache map[string]suggestionCacheEntry
}

// NewDomainService creates a new domain service. apiURL may be empty, in
// which case availability is reported as unknown.
func NewDomainService(db *gorm.DB, apiURL, apiKey string) *DomainService {
	return &DomainService{
		db:         db,
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		apiKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		cache:      make(map[string]suggestionCacheEntry),
	}
}

// SanitizeKeyword normalizes a raw search query into a registrable label
func SanitizeKeyword(query string) (string, error) {
	keyword := strings.ToLower(strings.TrimSpace(query))
	keyword = keywordPattern.ReplaceAllString(keyword, "")
	keyword = strings.Trim(keyword, "-")
	if keyword == "" {
		return "", apierrors.ValidationError("query must contain at least one letter or digit")
	}
	if len(keyword) > 63 {
		return "", apierrors.ValidationError("query is too long")
	}
	return keyword, nil
}

// Suggest returns domain candidates for a keyword across all enabled TLDs,
// with availability from the registrar API and prices from the pricing
// settings.
func (s *DomainService) Suggest(ctx context.Context, query string) (*models.DomainSuggestionResponse, error) {
	keyword, err := SanitizeKeyword(query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	entry, ok := s.cache[keyword]
	s.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < suggestionCacheTTL {
		return entry.response, nil
	}

	var settings []models.DomainPricingSetting
	if err := s.db.Where("enabled = ?", true).Order("tld").Find(&settings).Error; err != nil {
		return nil, apierrors.DatabaseError("list domain pricing", err)
	}

	suggestions := make([]models.DomainSuggestion, 0, len(settings))
	for _, setting := range settings {
		domain := keyword + "." + setting.TLD
		suggestions = append(suggestions, models.DomainSuggestion{
			Domain:       domain,
			TLD:          setting.TLD,
			Availability: s.checkAvailability(ctx, domain),
			Price:        setting.Price,
			Currency:     setting.Currency,
		})
	}

	response := &models.DomainSuggestionResponse{
		Keyword:     keyword,
		Suggestions: suggestions,
	}

	s.mu.Lock()
	s.cache[keyword] = suggestionCacheEntry{response: response, fetchedAt: time.Now()}
	s.mu.Unlock()

	return response, nil
}

// registrarAvailability is the registrar API response shape
type registrarAvailability struct {
	Available bool `json:"available"`
}

// checkAvailability queries the registrar API for one domain. Registrar
// failures degrade to unknown instead of failing the whole suggestion
// request.
func (s *DomainService) checkAvailability(ctx context.Context, domain string) string {
	if s.apiURL == "" {
		return models.AvailabilityUnknown
	}

	endpoint := fmt.Sprintf("%s/v1/availability?domain=%s", s.apiURL, url.QueryEscape(domain))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.AvailabilityUnknown
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		slog.Warn("Registrar availability lookup failed", "domain", domain, "error", err)
		return models.AvailabilityUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Registrar availability lookup returned non-OK status", "domain", domain, "status", resp.StatusCode)
		return models.AvailabilityUnknown
	}

	var availability registrarAvailability
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		slog.Warn("Failed to decode registrar response", "domain", domain, "error", err)
		return models.AvailabilityUnknown
	}

	if availability.Available {
		return models.AvailabilityAvailable
	}
	return models.AvailabilityTaken
}

// PricingForDomain resolves the enabled pricing row for a full domain name
func (s *DomainService) PricingForDomain(domain string) (*models.DomainPricingSetting, error) {
	idx := strings.Index(domain, ".")
	if idx <= 0 || idx == len(domain)-1 {
		return nil, apierrors.ValidationError("domain name must include a TLD")
	}
	if _, err := SanitizeKeyword(domain[:idx]); err != nil {
		return nil, apierrors.ValidationError("invalid domain name: " + domain)
	}
	tld := domain[idx+1:]

	var setting models.DomainPricingSetting
	err := s.db.First(&setting, "tld = ? AND enabled = ?", tld, true).Error
	if err != nil {
		return nil, apierrors.FromGormError(err, "domain pricing for ."+tld, "fetch domain pricing")
	}
	return &setting, nil
}

// ListDomainPricing returns all pricing settings, enabled or not
func (s *DomainService) ListDomainPricing() ([]models.DomainPricingSetting, error) {
	var settings []models.DomainPricingSetting
	if err := s.db.Order("tld").Find(&settings).Error; err != nil {
		return nil, apierrors.DatabaseError("list domain pricing", err)
	}
	return settings, nil
}

// UpsertDomainPricing creates or updates the pricing row for a TLD
func (s *DomainService) UpsertDomainPricing(tld string, req *models.UpsertDomainPricingRequest) (*models.DomainPricingSetting, error) {
	tld = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tld), "."))
	if tld == "" {
		return nil, apierrors.ValidationError("tld is required")
	}
	if req.Price < 0 {
		return nil, apierrors.ValidationError("price must not be negative")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}

	var setting models.DomainPricingSetting
	err := s.db.Where("tld = ?", tld).First(&setting).Error
	switch {
	case err == nil:
		setting.Price = req.Price
		setting.Currency = currency
		setting.Enabled = enabled
		if err := s.db.Save(&setting).Error; err != nil {
			return nil, apierrors.DatabaseError("update domain pricing", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.DomainPricingSetting{
			TLD:      tld,
			Price:    req.Price,
			Currency: currency,
			Enabled:  enabled,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, apierrors.DatabaseError("create domain pricing", err)
		}
	default:
		return nil, apierrors.DatabaseError("fetch domain pricing", err)
	}

	// Pricing changes shift suggestion results immediately
	s.mu.Lock()
	s.cache = make(map[string]suggestionCacheEntry)
	s.mu.Unlock()

	return &setting, nil
}
