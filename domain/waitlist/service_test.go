package waitlist

import (
	"context"
	"testing"

	"github.com/repowise/waitlist-api/internal/docstore"
	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/internal/models"
	apperrors "github.com/repowise/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (Service, Repository, *MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewRepository(docstore.NewMemoryStore())
	notifier := NewMockNotifier(ctrl)

	return NewService(repo, notifier, log.NewJSONLogger()), repo, notifier
}

func TestWaitlistService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), "dev@x.com", DeriveCode("dev@x.com"))

		result, err := service.Signup(ctx, "dev@x.com", "twitter", "")

		require.NoError(t, err)
		assert.Equal(t, StatusCreated, result.Status)
		assert.Equal(t, DeriveCode("dev@x.com"), result.ReferralCode)
		assert.Equal(t, 1, result.Position)
		assert.Equal(t, 1, result.Total)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "dev@x.com", entries[0].Email)
		require.NotNil(t, entries[0].Referrer)
		assert.Equal(t, "twitter", *entries[0].Referrer)
		assert.True(t, entries[0].EmailSent)
		assert.NotEmpty(t, entries[0].Timestamp)
	})

	t.Run("duplicate signup is idempotent", func(t *testing.T) {
		service, _, notifier := newTestService(t)
		// Exactly one welcome email across both attempts.
		notifier.EXPECT().DispatchWelcome(gomock.Any(), "dev@x.com", gomock.Any()).Times(1)

		first, err := service.Signup(ctx, "dev@x.com", "", "")
		require.NoError(t, err)

		second, err := service.Signup(ctx, "dev@x.com", "", "")
		require.NoError(t, err)

		assert.Equal(t, StatusAlreadyRegistered, second.Status)
		assert.Equal(t, first.ReferralCode, second.ReferralCode)
		assert.Equal(t, first.Position, second.Position)
		assert.Equal(t, 1, second.Total)
	})

	t.Run("re-signup delivers an unsent welcome email", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), "dev@x.com", DeriveCode("dev@x.com")).Times(1)

		// An entry can legitimately sit at emailSent=false: a crash between
		// persist and dispatch, or a restored collection with unsent rows.
		_, err := service.Restore(ctx, []models.WaitlistEntry{
			{Email: "dev@x.com", EmailSent: false},
		})
		require.NoError(t, err)

		result, err := service.Signup(ctx, "dev@x.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadyRegistered, result.Status)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].EmailSent)
	})

	t.Run("email is canonicalized", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), "dev@x.com", gomock.Any()).Times(1)

		_, err := service.Signup(ctx, "  DEV@X.COM  ", "", "")
		require.NoError(t, err)

		result, err := service.Signup(ctx, "dev@x.com", "", "")
		require.NoError(t, err)
		assert.Equal(t, StatusAlreadyRegistered, result.Status)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "dev@x.com", entries[0].Email)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Signup(ctx, "not-an-email", "", "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest))
	})

	t.Run("referral attribution", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		alice, err := service.Signup(ctx, "alice@x.com", "", "")
		require.NoError(t, err)

		_, err = service.Signup(ctx, "bob@x.com", "", alice.ReferralCode)
		require.NoError(t, err)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.NotNil(t, entries[1].ReferredBy)
		assert.Equal(t, "alice@x.com", *entries[1].ReferredBy)
	})

	t.Run("own code at signup cannot self-refer", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any())

		_, err := service.Signup(ctx, "alice@x.com", "", DeriveCode("alice@x.com"))
		require.NoError(t, err)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, entries[0].ReferredBy)
	})

	t.Run("unknown referral code is ignored", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any())

		result, err := service.Signup(ctx, "dev@x.com", "", "00000000")
		require.NoError(t, err)
		assert.Equal(t, StatusCreated, result.Status)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, entries[0].ReferredBy)
	})

	t.Run("storage failure surfaces and sends nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		notifier := NewMockNotifier(ctrl)
		service := NewService(mockRepo, notifier, log.NewJSONLogger())

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewStorageError("Waitlist storage is unavailable", nil))

		_, err := service.Signup(ctx, "dev@x.com", "", "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	})
}

func TestWaitlistService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty waitlist", func(t *testing.T) {
		service, _, _ := newTestService(t)

		stats, err := service.Stats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Total)
		assert.Nil(t, stats.LastSignup)
	})

	t.Run("reports last signup timestamp", func(t *testing.T) {
		service, _, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		_, err := service.Signup(ctx, "a@x.com", "", "")
		require.NoError(t, err)
		_, err = service.Signup(ctx, "b@x.com", "", "")
		require.NoError(t, err)

		stats, err := service.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Total)
		assert.NotNil(t, stats.LastSignup)
	})
}

func TestWaitlistService_DeleteEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("removes entry and reports remaining", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

		_, err := service.Signup(ctx, "a@x.com", "", "")
		require.NoError(t, err)
		_, err = service.Signup(ctx, "b@x.com", "", "")
		require.NoError(t, err)

		remaining, err := service.DeleteEntry(ctx, "A@X.COM")
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "b@x.com", entries[0].Email)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.DeleteEntry(ctx, "ghost@x.com")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestWaitlistService_ResendWelcomeEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("sends synchronously and marks entry", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any())
		notifier.EXPECT().SendWelcome(gomock.Any(), "dev@x.com", DeriveCode("dev@x.com")).Return(nil)

		_, err := service.Signup(ctx, "dev@x.com", "", "")
		require.NoError(t, err)

		require.NoError(t, service.ResendWelcomeEmail(ctx, "dev@x.com"))

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.True(t, entries[0].EmailSent)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		service, _, _ := newTestService(t)

		err := service.ResendWelcomeEmail(ctx, "ghost@x.com")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("delivery failure surfaces to the caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		notifier := NewMockNotifier(ctrl)
		service := NewService(mockRepo, notifier, log.NewJSONLogger())

		mockRepo.EXPECT().
			Load(gomock.Any()).
			Return([]models.WaitlistEntry{{Email: "dev@x.com"}}, int64(1), nil)
		notifier.EXPECT().
			SendWelcome(gomock.Any(), "dev@x.com", DeriveCode("dev@x.com")).
			Return(apperrors.NewNotificationError("Failed to send welcome email", nil))

		err := service.ResendWelcomeEmail(ctx, "dev@x.com")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotification))
	})
}

func TestWaitlistService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the whole collection", func(t *testing.T) {
		service, repo, notifier := newTestService(t)
		notifier.EXPECT().DispatchWelcome(gomock.Any(), gomock.Any(), gomock.Any())

		_, err := service.Signup(ctx, "old@x.com", "", "")
		require.NoError(t, err)

		restored, err := service.Restore(ctx, []models.WaitlistEntry{
			{Email: "a@x.com"},
			{Email: "b@x.com"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, restored)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a@x.com", entries[0].Email)
	})

	t.Run("nil payload empties the collection", func(t *testing.T) {
		service, repo, _ := newTestService(t)

		restored, err := service.Restore(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, restored)

		entries, _, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
