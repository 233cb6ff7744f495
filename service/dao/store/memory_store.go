// Package store provides the in-memory dao.Service implementation.
package store

import (
	"context"
	"sync"

	"github.com/genwave/genwave/service/dao"
)

// Store is a thread-safe in-memory keyed store.
type Store[K comparable, T any] struct {
	mu    sync.RWMutex
	items map[K]T
}

// New creates an empty store.
func New[K comparable, T any]() *Store[K, T] {
	return &Store[K, T]{items: make(map[K]T)}
}

// Get implements dao.Service.
func (s *Store[K, T]) Get(ctx context.Context, key K) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	if !ok {
		var zero T
		return zero, dao.ErrNotFound
	}
	return value, nil
}

// Put implements dao.Service.
func (s *Store[K, T]) Put(ctx context.Context, key K, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete implements dao.Service.
func (s *Store[K, T]) Delete(ctx context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Keys implements dao.Service.
func (s *Store[K, T]) Keys(ctx context.Context) ([]K, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	return keys, nil
}

var _ dao.Service[string, any] = (*Store[string, any])(nil)
