package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated customer as returned by the backend. The client
// stores and returns it; it never validates the tokens itself.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// DisplayName returns Name, falling back to Email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// AccessTokenExpiry reads the "exp" claim of the access token without
// verifying its signature. ok is false when the token is not a JWT or has no
// expiry.
func (u *User) AccessTokenExpiry() (exp time.Time, ok bool) {
	if u == nil || u.AccessToken == "" {
		return time.Time{}, false
	}
	return TokenExpiry(u.AccessToken)
}

// TokenExpiry returns the unverified "exp" claim of a JWT.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
