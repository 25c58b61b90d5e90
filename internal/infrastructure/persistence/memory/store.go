// Package memory implements an in-memory collection store.
// It backs tests and single-process demo runs; the redis and postgres
// packages provide the durable equivalents with the same contract.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
)

// Store keeps each collection as its JSON encoding, mirroring what the
// durable backends persist so round-trip behavior is identical in tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]byte)}
}

// Load decodes the named collection into out. A collection that has never
// been written leaves out untouched.
func (s *Store) Load(_ context.Context, collection string, out any) error {
	s.mu.RLock()
	data, ok := s.collections[collection]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return shared.WrapError("memory", "Load", shared.ErrCorruptRecord, "decode collection "+collection, err)
	}
	return nil
}

// Save replaces the named collection.
func (s *Store) Save(_ context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return shared.WrapError("memory", "Save", shared.ErrCorruptRecord, "encode collection "+collection, err)
	}
	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()
	return nil
}

// Reset drops all collections. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.collections = make(map[string][]byte)
	s.mu.Unlock()
}
