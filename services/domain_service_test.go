package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sitewave/order-api-go/models"
	apierrors "github.com/sitewave/order-api-go/pkg/errors"
)

func seedPricing(t *testing.T, db *gorm.DB) {
	settings := []models.DomainPricingSetting{
		{TLD: "com", Price: 150000, Currency: "IDR", Enabled: true},
		{TLD: "id", Price: 250000, Currency: "IDR", Enabled: true},
		{TLD: "org", Price: 180000, Currency: "IDR", Enabled: false},
	}
	for i := range settings {
		assert.NoError(t, db.Create(&settings[i]).Error)
	}
}

// registrarStub returns a transport that reports .com domains available and
// everything else taken, counting the calls it serves
func registrarStub(calls *atomic.Int64) *MockRoundTripper {
	return &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			body := `{"available":false}`
			if strings.HasSuffix(req.URL.Query().Get("domain"), ".com") {
				body = `{"available":true}`
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		},
	}
}

func TestSanitizeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
		wantErr  bool
	}{
		{"Lowercases", "MySite", "mysite", false},
		{"StripsSpacesAndPunctuation", "  My Site! ", "mysite", false},
		{"KeepsDigitsAndHyphens", "web-shop-24", "web-shop-24", false},
		{"TrimsEdgeHyphens", "-shop-", "shop", false},
		{"DropsNonASCII", "café", "caf", false},
		{"Empty", "   ", "", true},
		{"OnlyPunctuation", "!!!", "", true},
		{"TooLong", strings.Repeat("a", 64), "", true},
		{"MaxLength", strings.Repeat("a", 63), strings.Repeat("a", 63), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyword, err := SanitizeKeyword(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, keyword)
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Run("EnabledTLDsWithAvailability", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		seedPricing(t, db)

		var calls atomic.Int64
		service := NewDomainService(db, "https://registrar.example", "test-key")
		service.HTTPClient = &http.Client{Transport: registrarStub(&calls)}

		response, err := service.Suggest(context.Background(), "My Shop")
		assert.NoError(t, err)
		assert.Equal(t, "myshop", response.Keyword)
		assert.Len(t, response.Suggestions, 2)

		byTLD := make(map[string]models.DomainSuggestion)
		for _, s := range response.Suggestions {
			byTLD[s.TLD] = s
		}
		assert.Equal(t, "myshop.com", byTLD["com"].Domain)
		assert.Equal(t, models.AvailabilityAvailable, byTLD["com"].Availability)
		assert.Equal(t, int64(150000), byTLD["com"].Price)
		assert.Equal(t, models.AvailabilityTaken, byTLD["id"].Availability)
		assert.NotContains(t, byTLD, "org")
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("RepeatedQueryServedFromCache", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		seedPricing(t, db)

		var calls atomic.Int64
		service := NewDomainService(db, "https://registrar.example", "test-key")
		service.HTTPClient = &http.Client{Transport: registrarStub(&calls)}

		_, err := service.Suggest(context.Background(), "myshop")
		assert.NoError(t, err)
		callsAfterFirst := calls.Load()

		_, err = service.Suggest(context.Background(), "MyShop!")
		assert.NoError(t, err)
		assert.Equal(t, callsAfterFirst, calls.Load())
	})

	t.Run("RegistrarErrorDegradesToUnknown", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		seedPricing(t, db)

		service := NewDomainService(db, "https://registrar.example", "test-key")
		service.HTTPClient = &http.Client{Transport: &MockRoundTripper{
			RoundTripFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(bytes.NewBufferString("upstream down")),
				}, nil
			},
		}}

		response, err := service.Suggest(context.Background(), "myshop")
		assert.NoError(t, err)
		for _, s := range response.Suggestions {
			assert.Equal(t, models.AvailabilityUnknown, s.Availability)
		}
	})

	t.Run("NoRegistrarConfiguredReportsUnknown", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		seedPricing(t, db)

		service := NewDomainService(db, "", "")
		response, err := service.Suggest(context.Background(), "myshop")
		assert.NoError(t, err)
		assert.Len(t, response.Suggestions, 2)
		for _, s := range response.Suggestions {
			assert.Equal(t, models.AvailabilityUnknown, s.Availability)
		}
	})

	t.Run("InvalidQueryRejected", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := NewDomainService(db, "", "")

		_, err := service.Suggest(context.Background(), "!!!")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apierrors.HTTPStatusFor(err))
	})
}

func TestPricingForDomain(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	seedPricing(t, db)
	service := NewDomainService(db, "", "")

	t.Run("EnabledTLD", func(t *testing.T) {
		setting, err := service.PricingForDomain("myshop.com")
		assert.NoError(t, err)
		assert.Equal(t, "com", setting.TLD)
		assert.Equal(t, int64(150000), setting.Price)
	})

	t.Run("DisabledTLDNotFound", func(t *testing.T) {
		_, err := service.PricingForDomain("myshop.org")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apierrors.HTTPStatusFor(err))
	})

	t.Run("MissingTLD", func(t *testing.T) {
		_, err := service.PricingForDomain("myshop")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apierrors.HTTPStatusFor(err))
	})

	t.Run("InvalidLabel", func(t *testing.T) {
		_, err := service.PricingForDomain("!!!.com")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apierrors.HTTPStatusFor(err))
	})
}

func TestUpsertDomainPricing(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewDomainService(db, "", "")

	t.Run("CreatesNewTLD", func(t *testing.T) {
		setting, err := service.UpsertDomainPricing(".NET", &models.UpsertDomainPricingRequest{Price: 160000})
		assert.NoError(t, err)
		assert.Equal(t, "net", setting.TLD)
		assert.Equal(t, int64(160000), setting.Price)
		assert.Equal(t, "IDR", setting.Currency)
		assert.True(t, setting.Enabled)
	})

	t.Run("UpdatesExistingTLD", func(t *testing.T) {
		disabled := false
		setting, err := service.UpsertDomainPricing("net", &models.UpsertDomainPricingRequest{Price: 170000, Enabled: &disabled})
		assert.NoError(t, err)
		assert.Equal(t, int64(170000), setting.Price)
		assert.False(t, setting.Enabled)

		var count int64
		assert.NoError(t, db.Model(&models.DomainPricingSetting{}).Where("tld = ?", "net").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		_, err := service.UpsertDomainPricing("net", &models.UpsertDomainPricingRequest{Price: -1})
		assert.Error(t, err)
	})

	t.Run("EmptyTLDRejected", func(t *testing.T) {
		_, err := service.UpsertDomainPricing(".", &models.UpsertDomainPricingRequest{Price: 100})
		assert.Error(t, err)
	})

	t.Run("ClearsSuggestionCache", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		seedPricing(t, db)

		var calls atomic.Int64
		service := NewDomainService(db, "https://registrar.example", "test-key")
		service.HTTPClient = &http.Client{Transport: registrarStub(&calls)}

		_, err := service.Suggest(context.Background(), "myshop")
		assert.NoError(t, err)
		callsAfterFirst := calls.Load()

		_, err = service.UpsertDomainPricing("com", &models.UpsertDomainPricingRequest{Price: 99000})
		assert.NoError(t, err)

		response, err := service.Suggest(context.Background(), "myshop")
		assert.NoError(t, err)
		assert.Greater(t, calls.Load(), callsAfterFirst)

		for _, s := range response.Suggestions {
			if s.TLD == "com" {
				assert.Equal(t, int64(99000), s.Price)
			}
		}
	})
}
