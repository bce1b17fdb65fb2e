// Package cache provides a small TTL key-value cache used to memoize
// recommendation responses. A Redis-backed implementation is used when
// REDIS_ADDR is configured; an in-process implementation otherwise.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
