package session

import (
	"errors"

	"github.com/grundrisse/grundrisse/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const keyringUser = "access-token"

// Keyring stores the token in the operating system keyring.
type Keyring struct {
	Service string
	User    string
}

// NewKeyring returns a Keyring bound to the configured service name.
func NewKeyring() *Keyring {
	return &Keyring{
		Service: viper.GetString(key.SessionKeyringService),
		User:    keyringUser,
	}
}

// Token implements Provider.
func (k *Keyring) Token() (string, error) {
	token, err := keyring.Get(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return Static(token).Token()
}

// Save persists the token, replacing any previous one.
func (k *Keyring) Save(token string) error {
	return keyring.Set(k.Service, k.User, token)
}

// Delete forgets the token. Deleting a missing token is not an error.
func (k *Keyring) Delete() error {
	err := keyring.Delete(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
