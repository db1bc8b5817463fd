package spacedrep

import (
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// Card holds the spaced repetition state for a single reviewable content
// item (a case, provision, or flashcard). The card scheduler runs parallel
// to skill mastery and consumes only quality ratings.
type Card struct {
	CardID         string    `json:"card_id"`
	EasinessFactor float64   `json:"easiness_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
	LastReviewDate time.Time `json:"last_review_date"`
	LastQuality    int       `json:"last_quality"`
	TotalReviews   int       `json:"total_reviews"`
	CorrectReviews int       `json:"correct_reviews"`
	IsActive       bool      `json:"is_active"`
}

// NewCard creates the state for content seen for the first time. The card is
// due the same day so it enters the review queue immediately.
func NewCard(p tuning.SRSParams, cardID string, now time.Time) Card {
	return Card{
		CardID:         cardID,
		EasinessFactor: p.InitialEase,
		IntervalDays:   p.FirstInterval,
		Repetitions:    0,
		NextReviewDate: startOfDay(now),
		IsActive:       true,
	}
}

// IsDue reports whether the card should be reviewed: due date reached and
// not soft-deleted.
func (c Card) IsDue(now time.Time) bool {
	return c.IsActive && !startOfDay(now).Before(c.NextReviewDate)
}

// OverdueDays returns how many whole days past due the card is, 0 if not
// yet due.
func (c Card) OverdueDays(now time.Time) float64 {
	today := startOfDay(now)
	if today.Before(c.NextReviewDate) {
		return 0
	}
	return today.Sub(c.NextReviewDate).Hours() / 24.0
}

// DaysUntilReview returns the number of days until the next review, 0 if
// already due.
func (c Card) DaysUntilReview(now time.Time) int {
	today := startOfDay(now)
	if !today.Before(c.NextReviewDate) {
		return 0
	}
	return int(c.NextReviewDate.Sub(today).Hours() / 24.0)
}

// Retention returns the lifetime share of correct reviews.
func (c Card) Retention() float64 {
	if c.TotalReviews == 0 {
		return 0
	}
	return float64(c.CorrectReviews) / float64(c.TotalReviews)
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
