// Package cache holds the key/value store behind the public calculator's
// snapshot cache. Redis in production, an in-process map for development
// and tests.
package cache

import (
	"context"
	"time"
)

// Repository is the minimal cache surface the service needs.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
