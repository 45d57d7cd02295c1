package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed blob store. Values are opaque bytes; callers own the encoding.
// Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
