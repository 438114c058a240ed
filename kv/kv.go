package kv

import "context"

// Store is the minimal key-value contract required from both persistence
// collaborators: get-or-absent, set, remove. Values are opaque strings;
// every caller of this package serializes its own JSON.
type Store interface {
	// Get returns the stored value and true, or "" and false when the
	// key is absent. The error is reserved for backend failures.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
