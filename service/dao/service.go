// Package dao defines the generic persistence contract shared by the
// concrete stores under its subpackages.
package dao

import "context"

// Service is a generic keyed store.
type Service[K comparable, T any] interface {
	// Get returns the value for the key, or ErrNotFound.
	Get(ctx context.Context, key K) (T, error)

	// Put inserts or replaces the value for the key.
	Put(ctx context.Context, key K, value T) error

	// Delete removes the key; removing an absent key is not an error.
	Delete(ctx context.Context, key K) error

	// Keys lists all stored keys, in no particular order.
	Keys(ctx context.Context) ([]K, error)
}
