// Package docstore persists whole JSON collections as single versioned
// documents. Writers follow a load -> mutate -> save cycle; Save performs a
// compare-and-swap on the document version so that two concurrent cycles can
// never silently drop each other's changes.
package docstore

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by Save when the document changed since the
// version the caller loaded. Callers are expected to reload and retry.
var ErrVersionConflict = errors.New("docstore: document version conflict")

// Store is the versioned document store.
//
// Load returns (nil, 0, nil) only when the document genuinely does not exist.
// Any transport or decoding failure is reported as an error: an unreachable
// store must never be indistinguishable from an empty collection, or a
// transient read failure followed by a save would wipe the collection.
type Store interface {
	Load(ctx context.Context, key string) (data []byte, version int64, err error)
	Save(ctx context.Context, key string, data []byte, expectedVersion int64) error
}
