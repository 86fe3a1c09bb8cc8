// Package session persists the current user's identity on the client.
//
// The store is a durable string key/value map. The "user" key holds the
// JSON-serialized session. Writes are last-write-wins.
package session

import "context"

// Store is the SessionStore contract.
type Store interface {
	// GetItem returns the value stored under key. ok is false when the key
	// is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Clear removes the given keys atomically, or every key when none
	// are given.
	Clear(ctx context.Context, keys ...string) error
}
