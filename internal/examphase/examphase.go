package examphase

import (
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// Phase is the coarse urgency bucket derived from days until the exam.
type Phase string

const (
	// PhaseNone means no usable exam date (unset, or already past).
	PhaseNone        Phase = ""
	PhaseDistant     Phase = "distant"
	PhaseApproaching Phase = "approaching"
	PhaseCritical    Phase = "critical"
)

// Mode identifies which exam dominates preparation right now.
type Mode string

const (
	ModeWritten Mode = "WRITTEN"
	ModeOral    Mode = "ORAL"
	ModeMixed   Mode = "MIXED"
)

// Classify maps days-until-exam to a phase. A nil input means no exam date
// is set. The critical window takes precedence over approaching where the
// ranges overlap.
func Classify(daysUntil *int, p tuning.PhaseParams) Phase {
	if daysUntil == nil {
		return PhaseNone
	}
	d := *daysUntil
	switch {
	case d < 0:
		return PhaseNone
	case d <= p.CriticalMaxDays:
		return PhaseCritical
	case d >= p.DistantMinDays:
		return PhaseDistant
	default:
		return PhaseApproaching
	}
}

// DominantMode decides whether written or oral preparation should dominate.
// The nearer non-distant exam wins; two distant (or absent) exams, or a tie
// in proximity, yield MIXED.
func DominantMode(writtenDays, oralDays *int, p tuning.PhaseParams) Mode {
	wp := Classify(writtenDays, p)
	op := Classify(oralDays, p)

	wActive := wp == PhaseApproaching || wp == PhaseCritical
	oActive := op == PhaseApproaching || op == PhaseCritical

	switch {
	case wActive && !oActive:
		return ModeWritten
	case oActive && !wActive:
		return ModeOral
	case wActive && oActive:
		if *writtenDays < *oralDays {
			return ModeWritten
		}
		if *oralDays < *writtenDays {
			return ModeOral
		}
		return ModeMixed
	default:
		return ModeMixed
	}
}

// DaysUntil returns the whole calendar days from now to the given date, or
// nil when the date is unset. Same-day exams yield zero.
func DaysUntil(now time.Time, date *time.Time) *int {
	if date == nil {
		return nil
	}
	days := int(startOfDay(*date).Sub(startOfDay(now)).Hours() / 24)
	return &days
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
