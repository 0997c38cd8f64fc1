package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreMatchesFileStoreSemantics(t *testing.T) {
	store := NewMemStore()

	materialized, err := store.Materialized("widgets")
	require.NoError(t, err)
	assert.False(t, materialized)

	err = store.Update(func(tx Tx) error {
		return tx.Save("widgets", widgetDoc{Widgets: []string{"a"}})
	})
	require.NoError(t, err)

	materialized, err = store.Materialized("widgets")
	require.NoError(t, err)
	assert.True(t, materialized)

	var doc widgetDoc
	require.NoError(t, store.View(func(tx Tx) error {
		return tx.Load("widgets", &doc)
	}))
	assert.Equal(t, []string{"a"}, doc.Widgets)
}

func TestMemStoreFailedUpdateWritesNothing(t *testing.T) {
	store := NewMemStore()

	err := store.Update(func(tx Tx) error {
		if err := tx.Save("widgets", widgetDoc{Widgets: []string{"a"}}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	materialized, err := store.Materialized("widgets")
	require.NoError(t, err)
	assert.False(t, materialized)
}

func TestMemStoreSaveInViewRejected(t *testing.T) {
	store := NewMemStore()

	err := store.View(func(tx Tx) error {
		return tx.Save("widgets", widgetDoc{})
	})
	require.Error(t, err)
}
