package core

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Namespace is a flat string key-value store scoped to a single application namespace.
// Get returns ErrKeyNotFound when the key is absent.
type Namespace interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
