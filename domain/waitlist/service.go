package waitlist

import (
	"context"
	"strings"
	"time"

	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
)

// Status of a signup attempt.
type Status string

const (
	StatusCreated           Status = "created"
	StatusAlreadyRegistered Status = "already_registered"
)

// SignupResult carries everything the HTTP layer needs to build the response.
// Position is 1-based.
type SignupResult struct {
	Status       Status
	ReferralCode string
	Position     int
	Total        int
}

// StatsResult is the public view of the waitlist. LastSignup is nil when the
// waitlist is empty.
type StatsResult struct {
	Total      int
	LastSignup *string
}

// Notifier delivers welcome emails. DispatchWelcome is fire-and-forget;
// SendWelcome blocks and reports the outcome.
type Notifier interface {
	DispatchWelcome(ctx context.Context, email, referralCode string)
	SendWelcome(ctx context.Context, email, referralCode string) error
}

type Service interface {
	Signup(ctx context.Context, email, referrer, inboundCode string) (*SignupResult, error)
	Stats(ctx context.Context) (*StatsResult, error)
	ListEntries(ctx context.Context) ([]models.WaitlistEntry, error)
	DeleteEntry(ctx context.Context, email string) (int, error)
	ResendWelcomeEmail(ctx context.Context, email string) error
	Restore(ctx context.Context, entries []models.WaitlistEntry) (int, error)
}

type service struct {
	repository Repository
	notifier   Notifier
	logger     *log.Logger
}

func NewService(repository Repository, notifier Notifier, logger *log.Logger) Service {
	return &service{
		repository: repository,
		notifier:   notifier,
		logger:     logger,
	}
}

// Signup registers an email, attributing the referral when an inbound code
// resolves. Re-signup is idempotent: the existing entry is returned with its
// position, and no second welcome email goes out unless the first one never
// did (emailSent still false), in which case the entry is healed in place.
func (s *service) Signup(ctx context.Context, email, referrer, inboundCode string) (*SignupResult, error) {
	canonical := CanonicalEmail(email)
	if canonical == "" || !strings.Contains(canonical, "@") {
		return nil, apperrors.NewInvalidRequestError("Valid email required", nil)
	}

	var (
		result      SignupResult
		sendWelcome bool
	)

	_, err := s.repository.Update(ctx, func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		sendWelcome = false

		if idx := indexByEmail(entries, canonical); idx >= 0 {
			changed := false
			if entries[idx].ReferralCode == "" {
				// Backfill entries created before codes were stored.
				entries[idx].ReferralCode = DeriveCode(entries[idx].Email)
				changed = true
			}
			if !entries[idx].EmailSent {
				// The welcome email never went out (a crash between persist
				// and dispatch, or a restored collection with unsent rows).
				// Re-signup is the self-healing path: flip the flag and send.
				entries[idx].EmailSent = true
				sendWelcome = true
				changed = true
			}
			result = SignupResult{
				Status:       StatusAlreadyRegistered,
				ReferralCode: entries[idx].ReferralCode,
				Position:     idx + 1,
				Total:        len(entries),
			}
			return entries, changed, nil
		}

		entry := models.WaitlistEntry{
			Email:        canonical,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			ReferralCode: DeriveCode(canonical),
			EmailSent:    false,
		}
		if referrer = strings.TrimSpace(referrer); referrer != "" {
			entry.Referrer = &referrer
		}
		if referredBy, ok := ResolveReferrer(entries, inboundCode); ok {
			entry.ReferredBy = &referredBy
		}

		entries = append(entries, entry)
		sendWelcome = true
		result = SignupResult{
			Status:       StatusCreated,
			ReferralCode: entry.ReferralCode,
			Position:     len(entries),
			Total:        len(entries),
		}
		return entries, true, nil
	})
	if err != nil {
		return nil, err
	}

	// Dispatched only after the entry is durably persisted, so a storage
	// failure never produces a welcome email for a signup that was lost.
	if sendWelcome {
		s.notifier.DispatchWelcome(ctx, canonical, result.ReferralCode)
		s.markEmailSent(ctx, canonical)
	}

	return &result, nil
}

// markEmailSent flips emailSent after a dispatch. The flag means "a welcome
// email was dispatched at least once", so a failure here is logged and
// otherwise ignored; the worst case is one duplicate email on resend.
func (s *service) markEmailSent(ctx context.Context, canonical string) {
	_, err := s.repository.Update(ctx, func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		idx := indexByEmail(entries, canonical)
		if idx < 0 || entries[idx].EmailSent {
			return entries, false, nil
		}
		entries[idx].EmailSent = true
		return entries, true, nil
	})
	if err != nil {
		log.FromContext(ctx, s.logger).Error("Failed to mark welcome email as sent", "email", canonical, "error", err)
	}
}

func (s *service) Stats(ctx context.Context) (*StatsResult, error) {
	entries, _, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StatsResult{Total: len(entries)}
	if len(entries) > 0 {
		last := entries[len(entries)-1].Timestamp
		stats.LastSignup = &last
	}
	return stats, nil
}

func (s *service) ListEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	entries, _, err := s.repository.Load(ctx)
	return entries, err
}

// DeleteEntry removes an email from the waitlist and returns how many entries
// remain. Deleting an unknown email is a not-found error.
func (s *service) DeleteEntry(ctx context.Context, email string) (int, error) {
	canonical := CanonicalEmail(email)

	var remaining int
	_, err := s.repository.Update(ctx, func(entries []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		idx := indexByEmail(entries, canonical)
		if idx < 0 {
			return nil, false, apperrors.NewNotFoundError("Email not found in waitlist", nil)
		}
		entries = append(entries[:idx], entries[idx+1:]...)
		remaining = len(entries)
		return entries, true, nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// ResendWelcomeEmail delivers synchronously so the admin sees the real
// outcome, then marks the entry sent. Sending before marking means a crash in
// between costs at most a duplicate email, never a silently unsent one.
func (s *service) ResendWelcomeEmail(ctx context.Context, email string) error {
	canonical := CanonicalEmail(email)

	entries, _, err := s.repository.Load(ctx)
	if err != nil {
		return err
	}

	idx := indexByEmail(entries, canonical)
	if idx < 0 {
		return apperrors.NewNotFoundError("Email not found in waitlist", nil)
	}

	code := entries[idx].ReferralCode
	if code == "" {
		code = DeriveCode(entries[idx].Email)
	}

	if err := s.notifier.SendWelcome(ctx, entries[idx].Email, code); err != nil {
		return apperrors.NewNotificationError("Failed to send welcome email", err)
	}

	s.markEmailSent(ctx, canonical)
	return nil
}

// Restore replaces the whole collection with the given entries. Operational
// escape hatch for recovering from a bad write; entries are stored as given.
func (s *service) Restore(ctx context.Context, entries []models.WaitlistEntry) (int, error) {
	if entries == nil {
		entries = []models.WaitlistEntry{}
	}
	_, err := s.repository.Update(ctx, func(_ []models.WaitlistEntry) ([]models.WaitlistEntry, bool, error) {
		return entries, true, nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func indexByEmail(entries []models.WaitlistEntry, canonical string) int {
	for i, entry := range entries {
		if CanonicalEmail(entry.Email) == canonical {
			return i
		}
	}
	return -1
}
