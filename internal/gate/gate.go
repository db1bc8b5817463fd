package gate

import (
	"sort"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/diagnosis"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// Reason identifies a verification condition that is currently unmet.
type Reason string

const (
	ReasonInsufficientMastery Reason = "insufficient_mastery"
	ReasonLowStability        Reason = "low_stability"
	ReasonInsufficientPasses  Reason = "insufficient_passes"
	ReasonTooSoon             Reason = "too_soon"
	ReasonRecurringErrors     Reason = "recurring_errors"
)

// QualifyingPair identifies the two timed passes that satisfy the spacing
// condition: the latest qualifying pass and the most recent earlier pass far
// enough before it.
type QualifyingPair struct {
	FirstAttemptID  string
	SecondAttemptID string
	HoursBetween    float64
	Tags            []string // union of error tags on both passes
}

// Result reports one gate check. Eligible means every condition holds; the
// check itself never mutates state, so it is safe to re-run on every attempt.
type Result struct {
	Eligible  bool
	Reasons   []Reason
	Pair      *QualifyingPair
	Signature []string // the top error tags the pair was checked against
}

// Verification is the immutable audit record of a successful gate pass.
type Verification struct {
	SkillID         string
	PMastery        float64
	FirstAttemptID  string
	SecondAttemptID string
	HoursBetween    float64
	TagsCleared     []string
	VerifiedAt      time.Time
}

// Evaluate checks the exam-readiness conditions for one skill against its
// attempt history. All currently unmet conditions are reported; an empty
// reason list means the skill qualifies.
//
// The conditions, all of which must hold:
//   - pMastery at or above the gate threshold
//   - stability at or above the gate threshold
//   - at least RequiredTimedPasses passing attempts under exam conditions
//   - a qualifying pair separated by at least MinHoursBetweenPasses
//   - neither attempt of the pair carries one of the user's top recurring
//     error tags for the skill
func Evaluate(cfg tuning.Config, st mastery.State, history []mastery.SkillAttempt, now time.Time) Result {
	g := cfg.Gate
	var res Result

	if st.PMastery < g.MasteryThreshold {
		res.Reasons = append(res.Reasons, ReasonInsufficientMastery)
	}
	if st.Stability < g.StabilityThreshold {
		res.Reasons = append(res.Reasons, ReasonLowStability)
	}

	passes := qualifyingPasses(cfg, history)
	if len(passes) < g.RequiredTimedPasses {
		res.Reasons = append(res.Reasons, ReasonInsufficientPasses)
		return res
	}

	pair := selectPair(passes, g.MinHoursBetweenPasses)
	if pair == nil {
		res.Reasons = append(res.Reasons, ReasonTooSoon)
		return res
	}
	res.Pair = pair

	res.Signature = diagnosis.Signature(history, g.TopErrorTags)
	if hits := diagnosis.Overlap(pair.Tags, res.Signature); len(hits) > 0 {
		res.Reasons = append(res.Reasons, ReasonRecurringErrors)
	}

	res.Eligible = len(res.Reasons) == 0
	return res
}

// Advance applies gate transitions after a state change and returns the new
// state plus a Verification when the skill just became exam-ready.
//
// STUDYING moves to PRACTICING once any attempt is recorded. PRACTICING
// moves to EXAM_READY when Evaluate passes. EXAM_READY is never left: the
// gate records an audit fact, and a later mastery drop is the scheduler's
// concern, not a reason to revoke the record. Failure changes nothing, so
// re-running after every attempt is safe.
func Advance(cfg tuning.Config, st mastery.State, history []mastery.SkillAttempt, now time.Time) (mastery.State, *Verification) {
	next := st
	if next.Gate == mastery.GateStudying && next.AttemptCount > 0 {
		next.Gate = mastery.GatePracticing
	}
	if next.Gate != mastery.GatePracticing {
		return next, nil
	}

	res := Evaluate(cfg, next, history, now)
	if !res.Eligible {
		return next, nil
	}

	next.Gate = mastery.GateExamReady
	passedAt := now
	next.GatePassedAt = &passedAt

	v := &Verification{
		SkillID:         next.SkillID,
		PMastery:        next.PMastery,
		FirstAttemptID:  res.Pair.FirstAttemptID,
		SecondAttemptID: res.Pair.SecondAttemptID,
		HoursBetween:    res.Pair.HoursBetween,
		TagsCleared:     res.Pair.Tags,
		VerifiedAt:      now,
	}
	return next, v
}

// qualifyingPasses returns the attempts made under exam conditions with a
// passing score, ordered by time then attempt ID.
func qualifyingPasses(cfg tuning.Config, history []mastery.SkillAttempt) []mastery.SkillAttempt {
	var passes []mastery.SkillAttempt
	for _, a := range history {
		if mastery.ExamConditions(a.Mode) && a.ScoreNorm >= cfg.Mastery.PassThreshold {
			passes = append(passes, a)
		}
	}
	sort.Slice(passes, func(i, j int) bool {
		if !passes[i].OccurredAt.Equal(passes[j].OccurredAt) {
			return passes[i].OccurredAt.Before(passes[j].OccurredAt)
		}
		return passes[i].AttemptID < passes[j].AttemptID
	})
	return passes
}

// selectPair anchors on the latest qualifying pass and walks backwards to
// the most recent earlier pass at least minHours before it. Returns nil when
// every earlier pass is too close.
func selectPair(passes []mastery.SkillAttempt, minHours float64) *QualifyingPair {
	if len(passes) < 2 {
		return nil
	}
	latest := passes[len(passes)-1]
	for i := len(passes) - 2; i >= 0; i-- {
		gap := latest.OccurredAt.Sub(passes[i].OccurredAt).Hours()
		if gap >= minHours {
			return &QualifyingPair{
				FirstAttemptID:  passes[i].AttemptID,
				SecondAttemptID: latest.AttemptID,
				HoursBetween:    gap,
				Tags:            unionTags(passes[i], latest),
			}
		}
	}
	return nil
}

func unionTags(a, b mastery.SkillAttempt) []string {
	seen := make(map[string]bool, len(a.ErrorTags)+len(b.ErrorTags))
	var union []string
	for _, tags := range [][]string{a.ErrorTags, b.ErrorTags} {
		for _, t := range tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			union = append(union, t)
		}
	}
	sort.Strings(union)
	return union
}
