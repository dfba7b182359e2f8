// Package keychain keeps the bot token in the system keychain so it does not
// have to live in the config file or the environment.
package keychain

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "idbot"

	// TokenAccount is the keychain account holding the Telegram bot token.
	TokenAccount = "telegram-token"
)

var ErrNotFound = keyring.ErrNotFound

// Get retrieves a secret from the system keychain.
func Get(account string) (string, error) {
	return keyring.Get(serviceName, account)
}

// Set stores a secret in the system keychain.
func Set(account, value string) error {
	if value == "" {
		return errors.New("refusing to store an empty secret")
	}
	return keyring.Set(serviceName, account, value)
}

// Delete removes a secret. A missing secret is not an error.
func Delete(account string) error {
	err := keyring.Delete(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
