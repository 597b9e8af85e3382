package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("AllowsUpToLimit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.IsAllowed("10.0.0.1"))
		}
		assert.False(t, limiter.IsAllowed("10.0.0.1"))
	})

	t.Run("LimitsPerClient", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		assert.True(t, limiter.IsAllowed("10.0.0.1"))
		assert.False(t, limiter.IsAllowed("10.0.0.1"))
		assert.True(t, limiter.IsAllowed("10.0.0.2"))
	})

	t.Run("WindowExpiryResetsBudget", func(t *testing.T) {
		limiter := NewRateLimiter(1, 20*time.Millisecond)

		assert.True(t, limiter.IsAllowed("10.0.0.1"))
		assert.False(t, limiter.IsAllowed("10.0.0.1"))

		time.Sleep(30 * time.Millisecond)
		assert.True(t, limiter.IsAllowed("10.0.0.1"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	makeRequest := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/packages", nil)
		req.RemoteAddr = ip + ":51234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, makeRequest("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, makeRequest("10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, makeRequest("10.0.0.1").Code)
	// Other clients are unaffected
	assert.Equal(t, http.StatusOK, makeRequest("10.0.0.2").Code)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"RemoteAddr", "192.168.1.10:51234", nil, "192.168.1.10"},
		{"XForwardedForSingle", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"XForwardedForChain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
		{"XRealIP", "10.0.0.1:80", map[string]string{"X-Real-IP": "203.0.113.9"}, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
