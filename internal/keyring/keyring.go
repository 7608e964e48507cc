package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/checkin/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Vault reads and writes secrets under one keyring service.
type Vault struct {
	Service string
	User    string
}

// Default is the vault holding the PostgreSQL connection string.
func Default() Vault {
	return Vault{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (v Vault) Get() (string, error) {
	secret, err := keyring.Get(v.Service, v.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (v Vault) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(v.Service, v.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (v Vault) Delete() error {
	if err := keyring.Delete(v.Service, v.User); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available probes the keyring with a read. A missing entry still counts as available.
func (v Vault) Available() bool {
	_, err := keyring.Get(v.Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// GetConnectionString returns the stored PostgreSQL connection string.
func GetConnectionString() (string, error) {
	return Default().Get()
}

func SetConnectionString(connStr string) error {
	return Default().Set(connStr)
}

func DeleteConnectionString() error {
	return Default().Delete()
}
