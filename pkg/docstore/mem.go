package docstore

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store with the same semantics as FileStore.
// It backs service and handler tests without touching the filesystem.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) View(fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{store: s, readOnly: true})
}

func (s *MemStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for collection, data := range tx.staged {
		s.docs[collection] = data
	}
	return nil
}

func (s *MemStore) Materialized(collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[collection]
	return ok, nil
}

type memTx struct {
	store    *MemStore
	readOnly bool
	staged   map[string][]byte
}

func (tx *memTx) Load(collection string, out any) error {
	data, ok := tx.staged[collection]
	if !ok {
		data, ok = tx.store.docs[collection]
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed collection %s: %w", collection, err)
	}
	return nil
}

func (tx *memTx) Save(collection string, doc any) error {
	if tx.readOnly {
		return fmt.Errorf("save of collection %s inside a read-only view", collection)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	tx.staged[collection] = data
	return nil
}
