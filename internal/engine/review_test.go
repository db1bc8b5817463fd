package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

func TestAddCard_DueTheSameDay(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	card, err := env.svc.AddCard(ctx, user, "case-luth-judgment")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, card.EasinessFactor, 1e-9)
	assert.Equal(t, 0, card.Repetitions)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), card.NextReviewDate)

	due, err := env.svc.DueCards(ctx, user)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "case-luth-judgment", due[0].CardID)

	_, err = env.svc.AddCard(ctx, user, "case-luth-judgment")
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestReviewCard_PersistsScheduleAndLog(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.AddCard(ctx, user, "prov-bgb-433")
	require.NoError(t, err)

	out, err := env.svc.ReviewCard(ctx, user, "prov-bgb-433", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Card.Repetitions)
	assert.Equal(t, 1, out.Card.IntervalDays)
	assert.InDelta(t, 2.6, out.Card.EasinessFactor, 1e-9)
	assert.Equal(t, time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC), out.Card.NextReviewDate)
	assert.True(t, out.Log.Correct)

	row, err := env.repos.Cards.Get(ctx, user, "prov-bgb-433")
	require.NoError(t, err)
	assert.InDelta(t, 2.6, row.EasinessFactor, 1e-9)
	assert.Equal(t, 5, row.LastQuality)
	assert.Equal(t, 1, row.TotalReviews)
	require.NotNil(t, row.LastReviewDate)

	logs, err := env.repos.ReviewLogs.ListByCard(ctx, user, "prov-bgb-433", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].Quality)
	assert.InDelta(t, 2.6, logs[0].NewEase, 1e-9)

	// Reviewed today, due tomorrow: nothing left in the queue.
	due, err := env.svc.DueCards(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReviewCard_RejectsBadRequests(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.ReviewCard(ctx, user, "prov-bgb-433", 6)
	require.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.ReviewCard(ctx, user, "prov-bgb-433", -1)
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.ReviewCard(ctx, user, "never-added", 4)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRetireCard_LeavesTheQueue(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.AddCard(ctx, user, "card-old")
	require.NoError(t, err)
	require.NoError(t, env.svc.RetireCard(ctx, user, "card-old"))
	// Idempotent.
	require.NoError(t, env.svc.RetireCard(ctx, user, "card-old"))

	due, err := env.svc.DueCards(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, due)

	_, err = env.svc.ReviewCard(ctx, user, "card-old", 4)
	require.ErrorIs(t, err, ErrValidation)
}

func TestReviewForecast_DefaultHorizon(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.AddCard(ctx, user, "card-a")
	require.NoError(t, err)
	_, err = env.svc.AddCard(ctx, user, "card-b")
	require.NoError(t, err)
	_, err = env.svc.ReviewCard(ctx, user, "card-b", 5)
	require.NoError(t, err)

	forecast, err := env.svc.ReviewForecast(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, forecast, DefaultForecastDays)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), forecast[0].Date)
	assert.Equal(t, 1, forecast[0].Due)
	assert.Equal(t, 1, forecast[1].Due)
	for _, day := range forecast[2:] {
		assert.Equal(t, 0, day.Due)
	}
}

func TestAnnounceDue_PublishesOnlyWithBacklog(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.AddCard(ctx, user, "card-a")
	require.NoError(t, err)

	n, err := env.svc.AnnounceDue(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1}, env.notifier.cardsDue)

	_, err = env.svc.ReviewCard(ctx, user, "card-a", 5)
	require.NoError(t, err)

	n, err = env.svc.AnnounceDue(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	// An empty queue publishes nothing.
	assert.Equal(t, []int{1}, env.notifier.cardsDue)
}
