// Package store provides the durable local backup implementations behind
// interfaces.SessionStore: a map-backed store for tests and ephemeral runs
// and a SQLite-backed store for real deployments.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// MemoryStore keeps serialized backups in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	backups map[string][]byte
}

var _ interfaces.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{backups: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*model.Backup, error) {
	s.mu.RLock()
	raw, ok := s.backups[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var b model.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("store: decoding backup for %s: %w", sessionID, err)
	}
	return &b, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, backup *model.Backup) error {
	raw, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("store: encoding backup for %s: %w", sessionID, err)
	}
	s.mu.Lock()
	s.backups[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.backups, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
