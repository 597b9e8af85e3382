package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims are the JWT claims issued by the identity provider
type UserClaims struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	OrgName     string `json:"org_name"`
	jwt.RegisteredClaims
}

// AuthenticatedUser is the identity attached to the request context after
// token validation
type AuthenticatedUser struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewAuthenticatedUser builds an AuthenticatedUser from validated claims
func NewAuthenticatedUser(claims *UserClaims) *AuthenticatedUser {
	user := &AuthenticatedUser{
		UserID:      claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		PhoneNumber: claims.PhoneNumber,
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	return user
}

// IsTokenExpired reports whether the token backing this identity has expired
func (u *AuthenticatedUser) IsTokenExpired() bool {
	if u.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(u.ExpiresAt)
}
