// Package cachemanager provides the TTL-backed cache the Notifier actor uses
// to suppress repeat persistence-error alerts: the same storage operation
// failing over and over must notify the user once per window, not once per
// failed write.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a TTL-keyed cache. K is constrained to string-like types
// so callers can key it by a domain identifier (an operation name, an
// application name) without a wrapper type.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
}
