// Package bolt persists iteration history in a single bbolt file, one bucket
// per output directory. Suited to long INFINITE runs where rewriting a JSON
// file per iteration would not scale.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/genwave/genwave/model"
	"github.com/genwave/genwave/service/dao/history"
)

// Service is a bbolt-backed history store. Keys are 8-byte big-endian
// iteration numbers so the natural bucket order is iteration order.
type Service struct {
	db *bbolt.DB
}

var _ history.Store = (*Service)(nil)

// New opens (creating when absent) the bbolt database at the given path.
func New(path string) (*Service, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}
	return &Service{db: db}, nil
}

// Close releases the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

// Load implements history.Store.
func (s *Service) Load(ctx context.Context, outputDir string) (model.History, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	result := model.History{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(outputDir))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var record model.IterationRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("corrupt history record %d: %w", keyNumber(k), err)
			}
			result = append(result, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if err = result.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt history for %s: %w", outputDir, err)
	}
	return result, nil
}

// Append implements history.Store.
func (s *Service) Append(ctx context.Context, outputDir string, records ...model.IterationRecord) error {
	if outputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(outputDir))
		if err != nil {
			return fmt.Errorf("failed to create history bucket: %w", err)
		}
		next := 1
		if k, _ := bucket.Cursor().Last(); k != nil {
			next = keyNumber(k) + 1
		}
		for i, record := range records {
			if record.Number != next+i {
				return fmt.Errorf("record %d has number %d, want %d", i, record.Number, next+i)
			}
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal record %d: %w", record.Number, err)
			}
			if err = bucket.Put(numberKey(record.Number), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func numberKey(number int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(number))
	return key
}

func keyNumber(key []byte) int {
	return int(binary.BigEndian.Uint64(key))
}
