// Package kv provides the durable key/value byte store that progress and
// cached content are persisted on.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under a key.
var ErrNotFound = errors.New("kv: key not found")

// ErrCorrupt is returned by Get when stored bytes cannot be decoded.
var ErrCorrupt = errors.New("kv: corrupt value")

// Store is a durable mapping from string keys to opaque byte values.
// Values are written and read whole.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
