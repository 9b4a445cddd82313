package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/repowise/waitlist-api/internal/docstore"
	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/repowise/waitlist-api/pkg/retry"
)

const collectionKey = "waitlist.json"

// MutateFunc transforms the current collection inside an Update round. It
// returns the new collection, whether anything changed (an unchanged
// collection skips the write entirely), and an error to abort the update.
// The function may run more than once when a write round loses the version
// race, so it must be side-effect free.
type MutateFunc func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error)

// Repository persists the waitlist as a single JSON document.
type Repository interface {
	// Load returns the current collection. An absent document is an empty
	// waitlist; a storage failure is an error, never an empty result.
	Load(ctx context.Context) ([]models.WaitlistEntry, int64, error)

	// Update applies mutate under read-modify-write with optimistic
	// concurrency: a stale write is retried from a fresh load, so two
	// concurrent updates both land instead of the later one erasing the
	// earlier. Returns the collection as written.
	Update(ctx context.Context, mutate MutateFunc) ([]models.WaitlistEntry, error)
}

type repository struct {
	store  docstore.Store
	policy retry.RetryPolicy
}

func NewRepository(store docstore.Store) Repository {
	return &repository{
		store: store,
		policy: retry.NewExponentialBackoff(&retry.Config{
			MaxAttempts: 4,
			BaseDelay:   25 * time.Millisecond,
			MaxDelay:    500 * time.Millisecond,
			Multiplier:  2.0,
			RetryIf: func(err error) bool {
				return errors.Is(err, docstore.ErrVersionConflict)
			},
		}),
	}
}

func (r *repository) Load(ctx context.Context) ([]models.WaitlistEntry, int64, error) {
	data, version, err := r.store.Load(ctx, collectionKey)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("Waitlist storage is unavailable", err)
	}
	if len(data) == 0 {
		return []models.WaitlistEntry{}, version, nil
	}

	var entries []models.WaitlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, apperrors.NewStorageError("Waitlist data is unreadable", err)
	}
	return entries, version, nil
}

func (r *repository) Update(ctx context.Context, mutate MutateFunc) ([]models.WaitlistEntry, error) {
	var final []models.WaitlistEntry

	err := r.policy.Execute(func() error {
		entries, version, err := r.Load(ctx)
		if err != nil {
			return err
		}

		mutated, changed, err := mutate(entries)
		if err != nil {
			return err
		}
		if !changed {
			final = mutated
			return nil
		}

		data, err := json.MarshalIndent(mutated, "", "  ")
		if err != nil {
			return apperrors.NewStorageError("Waitlist data could not be encoded", err)
		}

		if err := r.store.Save(ctx, collectionKey, data, version); err != nil {
			return err
		}
		final = mutated
		return nil
	})

	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			return nil, apperrors.NewStorageError("Waitlist update lost repeated version races", err)
		}
		return nil, err
	}
	return final, nil
}
