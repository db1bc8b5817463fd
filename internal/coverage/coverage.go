package coverage

import (
	"math"
	"sort"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// Debt scores how urgently a skill needs attention:
//
//	debt = examWeight * (1 - coverageFraction) * ln(daysSinceLastPractice + 1)
//
// High-weight skills with unexplored formats grow debt the longer they sit
// untouched; the log keeps one neglected skill from drowning out the rest.
// Skills never practiced at all are treated as NeverPracticedDays stale.
func Debt(p tuning.DebtParams, skill skillgraph.Skill, attemptedFormats map[skillgraph.Format]bool, lastPracticedAt *time.Time, now time.Time) float64 {
	fraction := Fraction(skill, attemptedFormats)

	var days float64
	if lastPracticedAt == nil {
		days = p.NeverPracticedDays
	} else {
		days = now.Sub(*lastPracticedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
	}

	return skill.ExamWeight * (1 - fraction) * math.Log(days+1)
}

// Fraction returns the share of the skill's supported formats that have at
// least one attempt. A skill with no supported formats counts as covered.
func Fraction(skill skillgraph.Skill, attemptedFormats map[skillgraph.Format]bool) float64 {
	if len(skill.Formats) == 0 {
		return 1
	}
	attempted := 0
	for _, f := range skill.Formats {
		if attemptedFormats[f] {
			attempted++
		}
	}
	return float64(attempted) / float64(len(skill.Formats))
}

// FormatsAttempted collects the set of formats present in a skill's attempt
// history.
func FormatsAttempted(history []mastery.SkillAttempt) map[skillgraph.Format]bool {
	set := make(map[skillgraph.Format]bool, len(history))
	for _, a := range history {
		if a.Format != "" {
			set[a.Format] = true
		}
	}
	return set
}

// SkillDebt pairs a skill with its computed debt for ranking.
type SkillDebt struct {
	SkillID string  `json:"skill_id"`
	Debt    float64 `json:"debt"`
}

// Rank orders skills by debt descending, ties broken by skill ID so the
// order is deterministic.
func Rank(debts map[string]float64) []SkillDebt {
	ranked := make([]SkillDebt, 0, len(debts))
	for id, d := range debts {
		ranked = append(ranked, SkillDebt{SkillID: id, Debt: d})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Debt != ranked[j].Debt {
			return ranked[i].Debt > ranked[j].Debt
		}
		return ranked[i].SkillID < ranked[j].SkillID
	})
	return ranked
}
