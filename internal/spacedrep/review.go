package spacedrep

import (
	"math"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// ReviewLog records one applied review for auditing.
type ReviewLog struct {
	CardID           string    `json:"card_id"`
	Quality          int       `json:"quality"`
	Correct          bool      `json:"correct"`
	PreviousInterval int       `json:"previous_interval"`
	NewInterval      int       `json:"new_interval"`
	NewEase          float64   `json:"new_ease"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}

// Review applies one quality rating (0-5) to a card and returns the new
// card state plus a log entry. Pure: the input card is not modified.
//
// SM-2 schedule: the easiness factor moves on every review, floored at
// MinEase. A failing quality restarts the curve (repetitions 0, interval
// back to the first step); a passing quality advances it, with the interval
// growing by the easiness factor after the second step.
func Review(p tuning.SRSParams, c Card, quality int, now time.Time) (Card, ReviewLog) {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	next := c
	q := float64(quality)
	ease := c.EasinessFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ease < p.MinEase {
		ease = p.MinEase
	}
	next.EasinessFactor = ease

	correct := quality >= p.CorrectThreshold
	if !correct {
		next.Repetitions = 0
		next.IntervalDays = p.FirstInterval
	} else {
		next.Repetitions = c.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = p.FirstInterval
		case 2:
			next.IntervalDays = p.SecondInterval
		default:
			next.IntervalDays = int(math.Round(float64(c.IntervalDays) * ease))
		}
		if p.MaxIntervalDays >= 1 && next.IntervalDays > p.MaxIntervalDays {
			next.IntervalDays = p.MaxIntervalDays
		}
	}

	next.NextReviewDate = startOfDay(now).AddDate(0, 0, next.IntervalDays)
	next.LastReviewDate = now
	next.LastQuality = quality
	next.TotalReviews = c.TotalReviews + 1
	if correct {
		next.CorrectReviews = c.CorrectReviews + 1
	}

	return next, ReviewLog{
		CardID:           c.CardID,
		Quality:          quality,
		Correct:          correct,
		PreviousInterval: c.IntervalDays,
		NewInterval:      next.IntervalDays,
		NewEase:          ease,
		ReviewedAt:       now,
	}
}
