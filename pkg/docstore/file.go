package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore persists each collection as an independent JSON document
// under a data directory. A store-level RWMutex serializes every Update
// against concurrent Views and Updates, which is what guarantees the
// read-modify-write cycles of the engine cannot race each other.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a FileStore rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// View runs fn under the read lock.
func (s *FileStore) View(fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&fileTx{store: s, readOnly: true})
}

// Update runs fn under the write lock. Saves are staged in memory and
// flushed only after fn succeeds, so a failing operation leaves every
// collection untouched.
func (s *FileStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fileTx{store: s, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for _, collection := range tx.order {
		if err := s.writeFile(collection, tx.staged[collection]); err != nil {
			return err
		}
	}
	return nil
}

// Materialized reports whether the collection file exists on disk.
func (s *FileStore) Materialized(collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat collection %s: %w", collection, err)
	}
	return true, nil
}

// writeFile replaces the collection document via temp-file-then-rename
// so readers never observe a partially written file.
func (s *FileStore) writeFile(collection string, data []byte) error {
	final := s.path(collection)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}
	if s.logger != nil {
		s.logger.Debug("collection written",
			zap.String("collection", collection),
			zap.Int("bytes", len(data)))
	}
	return nil
}

type fileTx struct {
	store    *FileStore
	readOnly bool
	staged   map[string][]byte
	order    []string // staged collections in first-save order
}

func (tx *fileTx) Load(collection string, out any) error {
	// A save staged earlier in the same update must be visible to
	// subsequent loads.
	if data, ok := tx.staged[collection]; ok {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode staged collection %s: %w", collection, err)
		}
		return nil
	}

	data, err := os.ReadFile(tx.store.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		// Never materialized: leave out at its zero value.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed collection %s: %w", collection, err)
	}
	return nil
}

func (tx *fileTx) Save(collection string, doc any) error {
	if tx.readOnly {
		return fmt.Errorf("save of collection %s inside a read-only view", collection)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	if _, ok := tx.staged[collection]; !ok {
		tx.order = append(tx.order, collection)
	}
	tx.staged[collection] = data
	return nil
}
