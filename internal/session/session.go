// Package session tracks which account, if any, is signed in. The marker is
// persisted so a session survives process restarts.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/checkin/internal/constants"
	"github.com/julianstephens/checkin/internal/logger"
	"github.com/julianstephens/checkin/internal/models"
	"github.com/julianstephens/checkin/internal/storage"
)

var ErrNoActiveSession = errors.New("no active session, log in first")

type Session struct {
	kv storage.KV
}

func New(kv storage.KV) *Session {
	return &Session{kv: kv}
}

// Login makes id the current account, replacing any previous one.
func (s *Session) Login(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: account id is required", models.ErrValidation)
	}
	if err := s.kv.Set(constants.SessionKey, id); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	logger.Debug("Session started", "account", id)
	return nil
}

// Logout clears the current account. Logging out with no session is a no-op.
func (s *Session) Logout() error {
	if err := s.kv.Delete(constants.SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logger.Debug("Session ended")
	return nil
}

// Current returns the signed-in account id. ok is false when nobody is.
func (s *Session) Current() (id string, ok bool, err error) {
	id, ok, err = s.kv.Get(constants.SessionKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// Require returns the current account or ErrNoActiveSession.
func (s *Session) Require() (string, error) {
	id, ok, err := s.Current()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoActiveSession
	}
	return id, nil
}
