package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/mo"
)

// Claims are the parts of an access token shown to the operator.
type Claims struct {
	Subject   mo.Option[string]
	ExpiresAt mo.Option[time.Time]
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	exp, ok := c.ExpiresAt.Get()
	return ok && now.After(exp)
}

// PeekClaims decodes the token payload without verifying its signature.
// Verification is the backend's job; the result is for display only.
func PeekClaims(token string) (Claims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}

	var c Claims
	if claims.Subject != "" {
		c.Subject = mo.Some(claims.Subject)
	}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = mo.Some(claims.ExpiresAt.Time)
	}
	return c, nil
}
