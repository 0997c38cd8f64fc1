// Package testhelpers provides utilities for testing catalog-engine components.
package testhelpers

import (
	"testing"

	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/docstore"
)

// NewFileStore returns a FileStore rooted in a per-test temp directory
// together with its data directory. The directory is cleaned up with
// the test.
func NewFileStore(t *testing.T) (*docstore.FileStore, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := docstore.NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return store, dir
}
