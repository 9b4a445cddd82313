package waitlist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/repowise/waitlist-api/internal/docstore"
	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conflictingStore wraps a real store and fails the first n saves with a
// version conflict, simulating writers racing on the same document.
type conflictingStore struct {
	docstore.Store
	mu        sync.Mutex
	conflicts int
}

func (s *conflictingStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) error {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return docstore.ErrVersionConflict
	}
	s.mu.Unlock()
	return s.Store.Save(ctx, key, data, expectedVersion)
}

type failingStore struct {
	err error
}

func (s *failingStore) Load(ctx context.Context, key string) ([]byte, int64, error) {
	return nil, 0, s.err
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) error {
	return s.err
}

func appendEntry(email string) MutateFunc {
	return func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		return append(entries, models.WaitlistEntry{Email: email}), true, nil
	}
}

func TestRepository_LoadEmptyCollection(t *testing.T) {
	repo := NewRepository(docstore.NewMemoryStore())

	entries, version, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int64(0), version)
}

func TestRepository_LoadFailureIsAnErrorNotEmpty(t *testing.T) {
	repo := NewRepository(&failingStore{err: errors.New("disk gone")})

	entries, _, err := repo.Load(context.Background())

	assert.Nil(t, entries)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
}

func TestRepository_UpdatePersistsMutation(t *testing.T) {
	repo := NewRepository(docstore.NewMemoryStore())

	written, err := repo.Update(context.Background(), appendEntry("dev@x.com"))
	require.NoError(t, err)
	require.Len(t, written, 1)

	entries, version, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev@x.com", entries[0].Email)
	assert.Equal(t, int64(1), version)
}

func TestRepository_UnchangedMutationSkipsWrite(t *testing.T) {
	repo := NewRepository(docstore.NewMemoryStore())

	_, err := repo.Update(context.Background(), func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		return entries, false, nil
	})
	require.NoError(t, err)

	_, version, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestRepository_UpdateRetriesVersionConflicts(t *testing.T) {
	store := &conflictingStore{Store: docstore.NewMemoryStore(), conflicts: 2}
	repo := NewRepository(store)

	written, err := repo.Update(context.Background(), appendEntry("dev@x.com"))

	require.NoError(t, err)
	assert.Len(t, written, 1)
}

func TestRepository_UpdateGivesUpAfterRepeatedConflicts(t *testing.T) {
	store := &conflictingStore{Store: docstore.NewMemoryStore(), conflicts: 100}
	repo := NewRepository(store)

	_, err := repo.Update(context.Background(), appendEntry("dev@x.com"))

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
}

func TestRepository_MutationErrorAbortsWithoutRetry(t *testing.T) {
	repo := NewRepository(docstore.NewMemoryStore())

	calls := 0
	_, err := repo.Update(context.Background(), func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		calls++
		return nil, false, apperrors.NewNotFoundError("Email not found in waitlist", nil)
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Equal(t, 1, calls)
}

func TestRepository_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	repo := NewRepository(docstore.NewMemoryStore())

	// Each conflict a writer sees means another writer committed, and every
	// writer commits exactly once, so with 4 retry attempts 4 writers can
	// never exhaust the policy.
	const writers = 4
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.Update(context.Background(), appendEntry(string(rune('a'+n))+"@x.com"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, _, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, writers)
}
