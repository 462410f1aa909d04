// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to be written to the config file.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitus/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Vault is one secret slot in the OS keyring.
type Vault struct {
	Service string
	User    string
}

// Default is the slot holding the database connection string.
var Default = Vault{Service: constants.AppName, User: constants.DefaultKeyringUser}

func (v Vault) Get() (string, error) {
	secret, err := keyring.Get(v.Service, v.User)
	switch {
	case err == nil:
		return secret, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

// Set stores secret after trimming surrounding whitespace, which a pasted
// DSN often carries.
func (v Vault) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(v.Service, v.User, secret); err != nil {
		return fmt.Errorf("storing %s/%s in keyring: %w", v.Service, v.User, err)
	}
	return nil
}

func (v Vault) Delete() error {
	err := keyring.Delete(v.Service, v.User)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("removing %s/%s from keyring: %w", v.Service, v.User, err)
	}
}

// Available probes the backend with a read of an unused user.
func (v Vault) Available() bool {
	_, err := keyring.Get(v.Service, v.User+"-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

func GetConnectionString() (string, error) { return Default.Get() }

func SetConnectionString(connStr string) error { return Default.Set(connStr) }

func DeleteConnectionString() error { return Default.Delete() }

func IsAvailable() bool { return Default.Available() }
