package storage

import "errors"

// ErrNotLoaded is returned when a store is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// KV is the persistence substrate the engine reads and writes through.
// Values are opaque strings; callers own their serialization.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Provider is a KV with a lifecycle, as opened by the command line.
type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Keys lists every stored key, sorted. Used by doctor and backups.
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
