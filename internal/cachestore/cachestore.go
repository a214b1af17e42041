// Package cachestore provides the key/value store with TTL used for
// exchange-rate memoization and token blacklisting.
package cachestore

import "time"

// Store is the cache collaborator contract. Get returns (nil, nil) for a
// missing or expired key; expiry is enforced on read.
type Store interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Exists(key string) (bool, error)
	Delete(key string) error
}

// entry is the stored envelope. A zero ExpiresAt means the value never
// expires.
type entry struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
