package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestIsTerminalOrderStatus(t *testing.T) {
	terminal := []string{OrderStatusPaid, OrderStatusFailed, OrderStatusExpired, OrderStatusCanceled}
	for _, status := range terminal {
		assert.True(t, IsTerminalOrderStatus(status), status)
	}

	open := []string{OrderStatusPending, OrderStatusChallenge, "unknown", ""}
	for _, status := range open {
		assert.False(t, IsTerminalOrderStatus(status), status)
	}
}

func TestIsValidGateway(t *testing.T) {
	assert.True(t, IsValidGateway(GatewayMidtrans))
	assert.True(t, IsValidGateway(GatewayXendit))
	assert.False(t, IsValidGateway("stripe"))
	assert.False(t, IsValidGateway(""))
}

func TestNewAuthenticatedUser(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	claims := &UserClaims{
		Email:       "user@example.com",
		Name:        "Test User",
		PhoneNumber: "+628123456789",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	user := NewAuthenticatedUser(claims)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.WithinDuration(t, expiry, user.ExpiresAt, time.Second)
	assert.False(t, user.IsTokenExpired())
}

func TestIsTokenExpired(t *testing.T) {
	t.Run("Expired", func(t *testing.T) {
		user := &AuthenticatedUser{ExpiresAt: time.Now().Add(-time.Minute)}
		assert.True(t, user.IsTokenExpired())
	})

	t.Run("ZeroExpiryNeverExpires", func(t *testing.T) {
		user := &AuthenticatedUser{}
		assert.False(t, user.IsTokenExpired())
	})
}
