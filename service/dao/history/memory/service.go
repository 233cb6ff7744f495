// Package memory provides an in-process history store.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/service/dao"
	"github.com/genwave/genwave/service/dao/history"
	"github.com/genwave/genwave/service/dao/store"
)

// Service keeps histories in memory, one per output directory.
type Service struct {
	mu    sync.Mutex
	store *store.Store[string, model.History]
}

// New creates an empty in-memory history store.
func New() *Service {
	return &Service{store: store.New[string, model.History]()}
}

// Load implements history.Store.
func (s *Service) Load(ctx context.Context, outputDir string) (model.History, error) {
	result, err := s.store.Get(ctx, outputDir)
	if errors.Is(err, dao.ErrNotFound) {
		return model.History{}, nil
	}
	if err != nil {
		return nil, err
	}
	return append(model.History{}, result...), nil
}

// Append implements history.Store.
func (s *Service) Append(ctx context.Context, outputDir string, records ...model.IterationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.Load(ctx, outputDir)
	if err != nil {
		return err
	}
	if err = history.ValidateAppend(existing, records); err != nil {
		return err
	}
	return s.store.Put(ctx, outputDir, append(existing, records...))
}

var _ history.Store = (*Service)(nil)
