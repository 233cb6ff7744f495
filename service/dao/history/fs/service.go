// Package fs persists iteration history as a JSON file next to the generated
// work, so a resumed run over the same output directory continues where the
// previous one stopped.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/service/dao/history"
)

const historyFile = ".genwave-history.json"

// Service implements filesystem-based history storage on top of afs, so any
// scheme afs supports (file, mem, s3, gs) works as an output directory.
type Service struct {
	fs afs.Service
	mu sync.RWMutex
}

var _ history.Store = (*Service)(nil)

// New creates a filesystem history store.
func New() *Service {
	return &Service{fs: afs.New()}
}

// Load implements history.Store.
func (s *Service) Load(ctx context.Context, outputDir string) (model.History, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, outputDir)
}

func (s *Service) load(ctx context.Context, outputDir string) (model.History, error) {
	location := s.historyURL(outputDir)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check history at %s: %w", location, err)
	}
	if !exists {
		return model.History{}, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read history at %s: %w", location, err)
	}
	var result model.History
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history at %s: %w", location, err)
	}
	if err = result.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt history at %s: %w", location, err)
	}
	return result, nil
}

// Append implements history.Store.
func (s *Service) Append(ctx context.Context, outputDir string, records ...model.IterationRecord) error {
	if outputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load(ctx, outputDir)
	if err != nil {
		return err
	}
	if err = history.ValidateAppend(existing, records); err != nil {
		return err
	}
	data, err := json.Marshal(append(existing, records...))
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	location := s.historyURL(outputDir)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write history to %s: %w", location, err)
	}
	return nil
}

func (s *Service) historyURL(outputDir string) string {
	return url.Join(url.Normalize(outputDir, file.Scheme), historyFile)
}
