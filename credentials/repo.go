package credentials

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AttributeStore is the client attribute store the session attributes live
// in. The concrete store is host-specific (a cookie jar, a file, an in-memory
// fake); this core only ever reads the whole raw string and expires single
// attributes.
type AttributeStore interface {
	// Read returns the full raw attribute string.
	Read() (string, error)

	// Expire removes one attribute via an expiry-in-the-past rewrite scoped
	// to the whole origin path.
	Expire(name string) error
}

// Reader produces fresh snapshots from an AttributeStore. Every call re-reads
// and re-parses; nothing is cached between calls.
type Reader struct {
	store AttributeStore
}

// NewReader creates a Reader over the given store.
func NewReader(store AttributeStore) (*Reader, error) {
	if store == nil {
		return nil, errors.New("[NewReader] attribute store is required")
	}
	return &Reader{store: store}, nil
}

// Read returns the current snapshot. A store read failure degrades to an
// empty snapshot, which callers treat as the anonymous state.
func (r *Reader) Read() Snapshot {
	raw, err := r.store.Read()
	if err != nil {
		log.Debug().Err(err).Msg("attribute store read failed, treating as anonymous")
		return Snapshot{}
	}
	return Parse(raw)
}

// Store exposes the underlying attribute store for collaborators that clear
// attributes (logout).
func (r *Reader) Store() AttributeStore {
	return r.store
}
