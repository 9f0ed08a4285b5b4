// Package kvstore persists string values under string keys.
//
// Backends report every failure. Store wraps a Backend with the fail-soft
// contract the rest of the application relies on: failures are logged and
// mapped to "absent" results, never returned. Writer applies saves in the
// background, in the order they were issued.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"doit/internal/config"
)

// ErrClosed is returned by a backend used after Close.
var ErrClosed = errors.New("kvstore: closed")

// Backend is a durable string-keyed, string-valued map.
type Backend interface {
	// Get returns the value for key. ok is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any existing entry.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Open returns the backend for driver. path is only used by the sqlite driver.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case config.DriverSQLite:
		return NewSQLiteBackend(path)
	case config.DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", driver)
	}
}
