package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
)

var (
	ErrAccountExists = errors.New("account already exists")

	// ErrAuth is the parent of every verification failure.
	ErrAuth             = errors.New("authentication failed")
	ErrAccountNotFound  = fmt.Errorf("%w: account not found", ErrAuth)
	ErrPasswordMismatch = fmt.Errorf("%w: password does not match", ErrAuth)
)

// Credentials maps account ids to password digests. The whole map lives
// under a single key and is rewritten on registration.
type Credentials struct {
	kv  storage.KV
	now func() time.Time
}

func NewCredentials(kv storage.KV) *Credentials {
	return &Credentials{kv: kv, now: time.Now}
}

func (c *Credentials) load() (map[string]models.Account, error) {
	accounts := make(map[string]models.Account)
	if _, err := storage.GetJSON(c.kv, constants.AccountsKey, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// NormalizeID trims an account id and rejects an empty one.
func NormalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	return id, nil
}

// Register stores digest for a new account id. Ids are case-sensitive.
func (c *Credentials) Register(id, digest string) error {
	id, err := NormalizeID(id)
	if err != nil {
		return err
	}
	if digest == "" {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	accounts, err := c.load()
	if err != nil {
		return err
	}
	if _, exists := accounts[id]; exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, id)
	}

	accounts[id] = models.Account{
		ID:             id,
		PasswordDigest: digest,
		CreatedAt:      c.now().UTC(),
	}
	if err := storage.PutJSON(c.kv, constants.AccountsKey, accounts); err != nil {
		return err
	}

	logger.Debug("Account registered", "account", id)
	return nil
}

// Verify checks digest against the one stored for id.
func (c *Credentials) Verify(id, digest string) error {
	id = strings.TrimSpace(id)

	accounts, err := c.load()
	if err != nil {
		return err
	}
	account, ok := accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if subtle.ConstantTimeCompare([]byte(account.PasswordDigest), []byte(digest)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func (c *Credentials) Exists(id string) (bool, error) {
	accounts, err := c.load()
	if err != nil {
		return false, err
	}
	_, ok := accounts[strings.TrimSpace(id)]
	return ok, nil
}

// Count returns the number of registered accounts.
func (c *Credentials) Count() (int, error) {
	accounts, err := c.load()
	if err != nil {
		return 0, err
	}
	return len(accounts), nil
}
