// Package store provides the key-value persistence used for day records.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("store: key not found")

// KV is a string-keyed blob store.
// Implementations may be backed by memory, SQLite, Redis, etc.
type KV interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores or replaces the blob under key.
	Set(ctx context.Context, key string, blob []byte) error
}
