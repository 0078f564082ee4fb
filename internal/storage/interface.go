package storage

import (
	"strings"

	apperrors "github.com/julianstephens/cloudcontrol/internal/errors"
)

// ErrNotInitialized is returned by Load when the store has never been initialized.
var ErrNotInitialized = apperrors.ErrNotInitialized

// Backend is a small key-value store holding one JSON document per persisted key.
// Each Set replaces the whole value; there is no partial update and no locking.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the raw value stored under key. The bool is false when the key is absent.
	Get(key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(key string, value []byte) error
	// Clear removes every listed key in a single write.
	Clear(keys ...string) error

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether config names a PostgreSQL database rather than a file.
func IsPostgresConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// New selects a backend for config: a PostgreSQL URL selects PostgresStore, a path
// ending in .json selects JSONStore, and anything else is a SQLite database file.
func New(config string) (Backend, error) {
	switch {
	case IsPostgresConnString(config):
		if HasEmbeddedCredentials(config) {
			return nil, ErrEmbeddedCredentials
		}
		return NewPostgresStore(config), nil
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return NewJSONStore(config), nil
	default:
		return NewSQLiteStore(config), nil
	}
}
