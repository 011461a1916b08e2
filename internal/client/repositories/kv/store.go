// Package kv is the device-local key-value store every JobKeeper
// collection is persisted in. Each key holds one opaque value, usually a
// JSON document.
package kv

import (
	"context"
)

type Store interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// MultiRemove deletes all given keys in one operation. Missing keys are ignored.
	MultiRemove(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Incr atomically increments the decimal integer stored at key
	// (absent counts as 0) and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}
