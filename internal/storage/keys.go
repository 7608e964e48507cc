package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/checkin/internal/constants"
)

// HabitsKey is the key holding one account's habit list.
func HabitsKey(accountID string) string {
	return constants.HabitsKeyPrefix + accountID
}

// ScheduleKey is the key holding one account's schedule entries.
func ScheduleKey(accountID string) string {
	return constants.ScheduleKeyPrefix + accountID
}

// GetJSON decodes the value under key into v. It reports false, leaving v
// untouched, when the key is absent.
func GetJSON(kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
