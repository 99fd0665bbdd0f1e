//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=../../../mocks/mock_cache.go -package=mocks

// Package cache provides the key-value cache used for user lookups.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a string key-value cache. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns ErrMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value at key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrMiss signals a cache miss.
var ErrMiss = errors.New("cache: miss")

// NopCache never stores anything. It is used when no cache backend is configured.
type NopCache struct{}

var _ Cache = NopCache{}

func (NopCache) Get(context.Context, string) (string, error) { return "", ErrMiss }
func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NopCache) Del(context.Context, ...string) (int64, error) { return 0, nil }
func (NopCache) Ping(context.Context) error { return nil }
func (NopCache) Close() error { return nil }
