package docstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store with the same version semantics as the
// database-backed one. Used by tests and available as a throwaway dev backend.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]memoryDocument
}

type memoryDocument struct {
	body    []byte
	version int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryDocument)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, 0, nil
	}

	body := make([]byte, len(doc.body))
	copy(body, doc.body)
	return body, doc.version, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[key]
	switch {
	case !exists && expectedVersion != 0:
		return ErrVersionConflict
	case exists && doc.version != expectedVersion:
		return ErrVersionConflict
	}

	body := make([]byte, len(data))
	copy(body, data)
	s.docs[key] = memoryDocument{body: body, version: expectedVersion + 1}
	return nil
}
