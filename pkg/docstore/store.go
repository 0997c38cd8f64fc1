package docstore

// Tx provides collection access within a single critical section.
// Load reads a whole collection document into out; Save stages a full
// replacement of the collection document. Staged saves become visible
// only if the enclosing Update callback returns nil.
type Tx interface {
	Load(collection string, out any) error
	Save(collection string, doc any) error
}

// Store is the record store: full-document load/replace persistence of
// named collections. All access goes through View/Update closures so a
// load-mutate-write cycle is one critical section, including cycles
// that span multiple collections (cascade deletes).
type Store interface {
	// View runs fn with read access. Save inside a View returns an error.
	View(fn func(tx Tx) error) error

	// Update runs fn with exclusive access. Collection documents staged
	// via Save are persisted after fn returns nil; if fn returns an
	// error nothing is written.
	Update(fn func(tx Tx) error) error

	// Materialized reports whether the collection has ever been written.
	Materialized(collection string) (bool, error)
}
