// Package memory is the process-local session store backend.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

// Store keeps every profile namespace in a map guarded by a mutex.
type Store struct {
	mu   sync.RWMutex
	data map[uuid.UUID]map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[uuid.UUID]map[string]string)}
}

func (s *Store) Read(_ context.Context, profileID uuid.UUID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[profileID][key]
	if !ok {
		return "", fmt.Errorf("session entry %s/%s: %w", profileID, key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) Write(ctx context.Context, profileID uuid.UUID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[profileID]
	if !ok {
		ns = make(map[string]string)
		s.data[profileID] = ns
	}
	ns[key] = value
	return nil
}

func (s *Store) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[profileID]
	if !ok {
		return nil
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(s.data, profileID)
	}
	return nil
}

func (s *Store) Snapshot(_ context.Context, profileID uuid.UUID) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.data[profileID]))
	maps.Copy(out, s.data[profileID])
	return out, nil
}

func (s *Store) Ping(context.Context) error { return nil }
