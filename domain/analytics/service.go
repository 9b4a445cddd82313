package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
)

const maxEventNameLength = 100

type Service interface {
	// Track records an event. A storage failure is returned so the caller
	// can decide whether it matters; the public endpoint swallows it.
	Track(ctx context.Context, event string, data map[string]string) error
	List(ctx context.Context) ([]models.AnalyticsEvent, error)
}

type service struct {
	repository Repository
}

func NewService(repository Repository) Service {
	return &service{repository: repository}
}

func (s *service) Track(ctx context.Context, event string, data map[string]string) error {
	event = strings.TrimSpace(event)
	if event == "" {
		return apperrors.NewInvalidRequestError("Event name required", nil)
	}
	if len(event) > maxEventNameLength {
		return apperrors.NewInvalidRequestError("Event name too long", nil)
	}

	return s.repository.Append(ctx, models.AnalyticsEvent{
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
}

func (s *service) List(ctx context.Context) ([]models.AnalyticsEvent, error) {
	return s.repository.List(ctx)
}
