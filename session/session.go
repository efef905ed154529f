// Package session supplies the bearer token attached to registry requests.
//
// Callers receive a Provider instead of reading storage directly, so the
// store and the dashboard never depend on where the token lives.
package session

import (
	"errors"
	"strings"

	"github.com/grundrisse/grundrisse/key"
	"github.com/spf13/viper"
)

// ErrNoToken is returned when no credential is available.
var ErrNoToken = errors.New("no session token, run `grundrisse login`")

// Provider yields the current bearer token.
type Provider interface {
	Token() (string, error)
}

// Holder is a Provider that can also persist and forget a token.
type Holder interface {
	Provider
	Save(token string) error
	Delete() error
}

// Static always returns the same token.
type Static string

// Token implements Provider.
func (s Static) Token() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// Configured reads the token from the session.token configuration key,
// which is also exposed as the GRUNDRISSE_SESSION_TOKEN environment variable.
type Configured struct{}

// Token implements Provider.
func (Configured) Token() (string, error) {
	return Static(viper.GetString(key.SessionToken)).Token()
}

// Chain returns the token of the first provider that has one.
type Chain []Provider

// Token implements Provider.
func (c Chain) Token() (string, error) {
	for _, p := range c {
		token, err := p.Token()
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrNoToken) {
			return "", err
		}
	}
	return "", ErrNoToken
}

// Default prefers an explicitly configured token and falls back to the keyring.
func Default() Provider {
	return Chain{Configured{}, NewKeyring()}
}
