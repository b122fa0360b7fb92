package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "learntrack"
	tokenKey    = "api-token"
)

// TokenStore persists the single bearer token in the system keyring.
// It stands in for the browser's local storage: the token's presence is
// the sole authentication signal across restarts.
type TokenStore struct{}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/learntrack/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("learntrack-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Load retrieves the persisted token. A missing entry returns an empty
// token and no error.
func (TokenStore) Load() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("loading token: %w", err)
	}

	return string(item.Data), nil
}

// Save stores the token, replacing any previous value.
func (TokenStore) Save(token string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	return nil
}

// Clear removes the persisted token. Clearing an absent token is not
// an error.
func (TokenStore) Clear() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("clearing token: %w", err)
	}

	return nil
}
