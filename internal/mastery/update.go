package mastery

import (
	"math"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// Update applies one graded outcome to a skill's state and returns the new
// state. It is pure and deterministic: identical inputs always reproduce the
// identical output, and it performs no I/O.
//
// The estimate moves toward the observed score: the raw delta is proportional
// to (scoreNorm - pMastery), scaled by format, mode, difficulty and coverage
// weight, then clamped to the asymmetric step [DeltaFloor, DeltaCeil]. A
// single attempt can never move the estimate past that step.
func Update(p tuning.MasteryParams, s State, o Outcome) State {
	fw := weightFor(p.FormatWeights, string(o.Format))
	mw := weightFor(p.ModeWeights, string(o.Mode))
	df := difficultyFactor(p.DifficultyStep, o.Difficulty)
	cw := clamp(o.CoverageWeight, 0, 1)

	raw := p.LearningRate * (o.ScoreNorm - s.PMastery) * fw * mw * df * cw
	delta := clamp(raw, p.DeltaFloor, p.DeltaCeil)

	next := s
	next.PMastery = clamp01(s.PMastery + delta)

	success := o.ScoreNorm >= p.PassThreshold
	if success {
		next.Stability = clamp(s.Stability+p.StabilityGain, p.StabilityFloor, p.StabilityCeil)
		next.CorrectCount++
	} else {
		next.Stability = clamp(s.Stability-p.StabilityLoss, p.StabilityFloor, p.StabilityCeil)
	}
	next.AttemptCount++

	occurred := o.OccurredAt
	next.LastPracticedAt = &occurred
	review := nextReview(p, occurred, next.Stability, next.PMastery)
	next.NextReviewDate = &review

	return next
}

// weightFor looks up a weight by wire name. Unknown names fall back to the
// neutral weight 1.0 rather than failing.
func weightFor(table map[string]float64, key string) float64 {
	if w, ok := table[key]; ok {
		return w
	}
	return 1.0
}

// difficultyFactor maps an item difficulty tier to a linear factor centered
// on 1.0 at tier 3. Out-of-range tiers fall back to 1.0.
func difficultyFactor(step float64, tier int) float64 {
	if tier < 1 || tier > 5 {
		return 1.0
	}
	return 1.0 + step*float64(tier-3)
}

// nextReview schedules the skill-level review: stable, well-known skills are
// spaced out further, shaky ones come back within a day.
func nextReview(p tuning.MasteryParams, occurred time.Time, stability, pMastery float64) time.Time {
	days := int(math.Round(1 + p.ReviewScaleDays*stability*pMastery))
	if days < 1 {
		days = 1
	}
	if p.ReviewMaxDays >= 1 && days > p.ReviewMaxDays {
		days = p.ReviewMaxDays
	}
	return startOfDay(occurred).AddDate(0, 0, days)
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
