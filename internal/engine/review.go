package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/spacedrep"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// DefaultForecastDays is the review forecast horizon when the caller does
// not ask for one.
const DefaultForecastDays = 7

// AddCard registers a content item (a case, provision or flashcard) for
// spaced review. The card is due the same day it is created; registering
// the same card twice surfaces store.ErrConflict.
func (s *Service) AddCard(ctx context.Context, userID uuid.UUID, cardID string) (*spacedrep.Card, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	if cardID == "" {
		return nil, fmt.Errorf("%w: missing card id", ErrValidation)
	}

	card := spacedrep.NewCard(s.cfg.SRS, cardID, s.now())
	row := &store.Card{UserID: userID, CardID: cardID}
	applyCard(row, card)
	if err := s.repos.Cards.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create card %q: %w", cardID, err)
	}
	return &card, nil
}

// ReviewOutcome is the result of applying one review.
type ReviewOutcome struct {
	Card spacedrep.Card      `json:"card"`
	Log  spacedrep.ReviewLog `json:"log"`
}

// ReviewCard applies a quality rating (0-5) to a card and persists the new
// schedule plus an audit log entry.
func (s *Service) ReviewCard(ctx context.Context, userID uuid.UUID, cardID string, quality int) (*ReviewOutcome, error) {
	if quality < 0 || quality > 5 {
		return nil, fmt.Errorf("%w: quality %d outside 0..5", ErrValidation, quality)
	}

	row, err := s.repos.Cards.Get(ctx, userID, cardID)
	if err != nil {
		return nil, fmt.Errorf("load card %q: %w", cardID, err)
	}
	if !row.IsActive {
		return nil, fmt.Errorf("%w: card %q is retired", ErrValidation, cardID)
	}

	card := cardFromRow(row)
	next, entry := spacedrep.Review(s.cfg.SRS, card, quality, s.now())
	applyCard(row, next)
	if err := s.repos.Cards.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("save card %q: %w", cardID, err)
	}

	logRow := &store.ReviewLog{
		UserID:           userID,
		CardID:           cardID,
		Quality:          entry.Quality,
		Correct:          entry.Correct,
		PreviousInterval: entry.PreviousInterval,
		NewInterval:      entry.NewInterval,
		NewEase:          entry.NewEase,
		ReviewedAt:       entry.ReviewedAt,
	}
	if err := s.repos.ReviewLogs.Insert(ctx, logRow); err != nil {
		// The schedule already advanced; losing the log entry is the
		// lesser harm.
		s.log.Error("persist review log", "card_id", cardID, "err", err)
	}
	return &ReviewOutcome{Card: next, Log: entry}, nil
}

// RetireCard removes a card from the active queue without deleting its
// history. Idempotent.
func (s *Service) RetireCard(ctx context.Context, userID uuid.UUID, cardID string) error {
	if err := s.repos.Cards.Deactivate(ctx, userID, cardID); err != nil {
		return fmt.Errorf("retire card %q: %w", cardID, err)
	}
	return nil
}

// DueCards returns the user's due cards, most overdue first.
func (s *Service) DueCards(ctx context.Context, userID uuid.UUID) ([]spacedrep.Card, error) {
	cards, err := s.activeCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	return spacedrep.Due(cards, s.now()), nil
}

// ReviewForecast projects the review load over the coming days, backlog
// included on day zero. Non-positive horizons fall back to
// DefaultForecastDays.
func (s *Service) ReviewForecast(ctx context.Context, userID uuid.UUID, days int) ([]spacedrep.ForecastDay, error) {
	if days < 1 {
		days = DefaultForecastDays
	}
	cards, err := s.activeCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	return spacedrep.Forecast(cards, s.now(), days), nil
}

// AnnounceDue publishes a cards.due event when the user has reviews waiting
// and returns the due count. No event is published for an empty queue.
func (s *Service) AnnounceDue(ctx context.Context, userID uuid.UUID) (int, error) {
	due, err := s.DueCards(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(due) > 0 {
		s.notifier.CardsDue(ctx, userID, len(due))
	}
	return len(due), nil
}

func (s *Service) activeCards(ctx context.Context, userID uuid.UUID) ([]spacedrep.Card, error) {
	rows, err := s.repos.Cards.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	cards := make([]spacedrep.Card, len(rows))
	for i := range rows {
		cards[i] = cardFromRow(&rows[i])
	}
	return cards, nil
}
