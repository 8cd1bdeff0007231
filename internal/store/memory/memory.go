// Package memory holds documents in process memory. It backs tests and
// throwaway runs where nothing should survive a restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, key string, dest any) error {
	s.mu.RLock()
	body, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode document %q: %w", key, err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, key string, records any) error {
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}

	s.mu.Lock()
	s.docs[key] = body
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}
