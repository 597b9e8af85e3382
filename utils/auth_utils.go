package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sitewave/order-api-go/models"
)

type contextKey string

const authenticatedUserKey contextKey = "authenticatedUser"

// ExtractBearerToken extracts the bearer token from the Authorization header
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", fmt.Errorf("empty bearer token")
	}

	return token, nil
}

// SetAuthenticatedUser stores the authenticated user in the request context
func SetAuthenticatedUser(ctx context.Context, user *models.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, authenticatedUserKey, user)
}

// GetAuthenticatedUser retrieves the authenticated user from the request context
func GetAuthenticatedUser(ctx context.Context) (*models.AuthenticatedUser, bool) {
	user, ok := ctx.Value(authenticatedUserKey).(*models.AuthenticatedUser)
	return user, ok && user != nil
}
