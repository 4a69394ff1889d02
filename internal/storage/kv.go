// Package storage persists the catalog snapshot and the display preference
// in a key/value backend.
package storage

import (
	"context"
	"errors"
)

// Versioned keys. Bump the suffix when the stored shape changes so old data
// is never read as the new format.
const (
	KeyData  = "poetry.data.v3"
	KeyTheme = "poetry.theme.v1"
)

var (
	// ErrKeyNotFound is returned by KV.Get when the key holds no value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for keys a backend cannot address.
	ErrInvalidKey = errors.New("invalid key")
)

// KV is the minimal contract every backend implements. Values are opaque
// strings; Set overwrites.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
	// Backend names the implementation for logs and probes.
	Backend() string
}
