package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sitewave/order-api-go/models"
)

func seedOrderFixtures(t *testing.T, db *gorm.DB) models.Package {
	pkg := models.Package{PackageID: "pkg_starter", Name: "Starter", Price: 150000, Currency: "IDR", DurationMonths: 3, Active: true}
	assert.NoError(t, db.Create(&pkg).Error)
	pricing := models.DomainPricingSetting{TLD: "com", Price: 150000, Currency: "IDR", Enabled: true}
	assert.NoError(t, db.Create(&pricing).Error)
	return pkg
}

func TestHandleOrders(t *testing.T) {
	t.Run("CreateOrder", func(t *testing.T) {
		_, mux, db := newTestServer(t)
		seedOrderFixtures(t, db)

		body, err := json.Marshal(models.CreateOrderRequest{
			PackageID:  "pkg_starter",
			DomainName: "myshop.com",
			Gateway:    models.GatewayMidtrans,
		})
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/orders", body, "user-1"))
		assert.Equal(t, http.StatusCreated, w.Code)

		var order models.OrderResponse
		decodeJSON(t, w, &order)
		assert.Equal(t, "user-1", order.UserID)
		assert.Equal(t, int64(300000), order.Amount)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	})

	t.Run("CreateOrderUnauthenticated", func(t *testing.T) {
		_, mux, db := newTestServer(t)
		seedOrderFixtures(t, db)

		body, err := json.Marshal(models.CreateOrderRequest{PackageID: "pkg_starter", Gateway: models.GatewayMidtrans})
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("CreateOrderInvalidBody", func(t *testing.T) {
		_, mux, db := newTestServer(t)
		seedOrderFixtures(t, db)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/orders", []byte(`{oops`), "user-1"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListOwnOrdersOnly", func(t *testing.T) {
		_, mux, db := newTestServer(t)
		seedOrderFixtures(t, db)

		for _, o := range []models.Order{
			{OrderID: "ord_a", UserID: "user-1", PackageID: "pkg_starter", Amount: 150000, Status: models.OrderStatusPending, Gateway: models.GatewayMidtrans},
			{OrderID: "ord_b", UserID: "user-2", PackageID: "pkg_starter", Amount: 150000, Status: models.OrderStatusPending, Gateway: models.GatewayMidtrans},
		} {
			assert.NoError(t, db.Create(&o).Error)
		}

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/orders", nil, "user-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Items []models.OrderResponse `json:"items"`
			Count int                    `json:"count"`
		}
		decodeJSON(t, w, &response)
		assert.Equal(t, 1, response.Count)
		assert.Equal(t, "ord_a", response.Items[0].OrderID)
	})

	t.Run("AdminListsAllOrders", func(t *testing.T) {
		_, mux, db := newTestServer(t)
		seedOrderFixtures(t, db)
		grantAdmin(t, db, "admin-1")

		for _, o := range []models.Order{
			{OrderID: "ord_a", UserID: "user-1", PackageID: "pkg_starter", Amount: 150000, Status: models.OrderStatusPending, Gateway: models.GatewayMidtrans},
			{OrderID: "ord_b", UserID: "user-2", PackageID: "pkg_starter", Amount: 150000, Status: models.OrderStatusPending, Gateway: models.GatewayMidtrans},
		} {
			assert.NoError(t, db.Create(&o).Error)
		}

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/orders", nil, "admin-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Count int `json:"count"`
		}
		decodeJSON(t, w, &response)
		assert.Equal(t, 2, response.Count)
	})
}

func TestHandleOrderByID(t *testing.T) {
	_, mux, db := newTestServer(t)
	seedOrderFixtures(t, db)

	order := models.Order{OrderID: "ord_detail", UserID: "user-1", PackageID: "pkg_starter", Amount: 150000, Status: models.OrderStatusPending, Gateway: models.GatewayMidtrans}
	assert.NoError(t, db.Create(&order).Error)

	t.Run("OwnerReadsOwnOrder", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/orders/ord_detail", nil, "user-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response models.OrderResponse
		decodeJSON(t, w, &response)
		assert.Equal(t, "ord_detail", response.OrderID)
		assert.Equal(t, "Starter", response.PackageName)
	})

	t.Run("ForeignOrderHiddenAsNotFound", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/orders/ord_detail", nil, "user-2"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/orders/ord_nope", nil, "user-1"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleSubscriptions(t *testing.T) {
	_, mux, db := newTestServer(t)

	now := time.Now()
	sub := models.UserPackage{
		UserPackageID: "sub_1",
		UserID:        "user-1",
		PackageID:     "pkg_starter",
		OrderID:       "ord_1",
		Status:        models.SubscriptionStatusActive,
		StartsAt:      now,
		ExpiresAt:     now.AddDate(0, 3, 0),
	}
	assert.NoError(t, db.Create(&sub).Error)

	t.Run("ListsOwnSubscriptions", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/subscriptions", nil, "user-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Items []models.SubscriptionResponse `json:"items"`
			Count int                           `json:"count"`
		}
		decodeJSON(t, w, &response)
		assert.Equal(t, 1, response.Count)
		assert.True(t, response.Items[0].Active)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subscriptions", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleProfile(t *testing.T) {
	_, mux, _ := newTestServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/profile", nil, "user-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	var profile models.ProfileResponse
	decodeJSON(t, w, &profile)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "user-1@example.com", profile.Email)
}
