package analytics

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

const collectionKey = "analytics.json"

// maxEvents bounds the collection; the oldest events fall off on append so
// the document can never grow without limit.
const maxEvents = 1000

type Repository interface {
	Append(ctx context.Context, event models.AnalyticsEvent) error
	List(ctx context.Context) ([]models.AnalyticsEvent, error)
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

func (r *repository) Append(ctx context.Context, event models.AnalyticsEvent) error {
	err := r.policy.Execute(func() error {
		events, version, err := r.load(ctx)
		if err != nil {
			return err
		}

		events = append(events, event)
		if len(events) > maxEvents {
			events = events[len(events)-maxEvents:]
		}

		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return apperrors.NewStorageError("Analytics data could not be encoded", err)
		}
		return r.store.Save(ctx, collectionKey, data, version)
	})

	if err != nil && errors.Is(err, docstore.ErrVersionConflict) {
		return apperrors.NewStorageError("Analytics update lost repeated version races", err)
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]models.AnalyticsEvent, error) {
	events, _, err := r.load(ctx)
	return events, err
}

func (r *repository) load(ctx context.Context) ([]models.AnalyticsEvent, int64, error) {
	data, version, err := r.store.Load(ctx, collectionKey)
	if err != nil {
		return nil, 0, apperrors.NewStorageError("Analytics storage is unavailable", err)
	}
	if len(data) == 0 {
		return []models.AnalyticsEvent{}, version, nil
	}

	var events []models.AnalyticsEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, 0, apperrors.NewStorageError("Analytics data is unreadable", err)
	}
	return events, version, nil
}
