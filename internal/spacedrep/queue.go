package spacedrep

import (
	"sort"
	"time"
)

// Due returns the active cards at or past their review date, most overdue
// first, ties broken by card ID.
func Due(cards []Card, now time.Time) []Card {
	var due []Card
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		oi, oj := due[i].OverdueDays(now), due[j].OverdueDays(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].CardID < due[j].CardID
	})
	return due
}

// ForecastDay is the review load expected on one day.
type ForecastDay struct {
	Date time.Time `json:"date"`
	Due  int       `json:"due"`
}

// Forecast projects the review queue over the coming days. Day zero counts
// everything already due (backlog included); later days count cards whose
// review date falls on that day. Inactive cards are ignored.
func Forecast(cards []Card, now time.Time, days int) []ForecastDay {
	if days < 1 {
		return nil
	}
	today := startOfDay(now)
	forecast := make([]ForecastDay, days)
	for i := range forecast {
		forecast[i].Date = today.AddDate(0, 0, i)
	}

	for _, c := range cards {
		if !c.IsActive {
			continue
		}
		switch {
		case !today.Before(c.NextReviewDate):
			forecast[0].Due++
		default:
			offset := int(c.NextReviewDate.Sub(today).Hours() / 24.0)
			if offset < days {
				forecast[offset].Due++
			}
		}
	}
	return forecast
}
