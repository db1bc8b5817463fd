package planner

import (
	"math"
	"sort"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// candidate is one scoreable (skill, item, mode) triple.
type candidate struct {
	skill   skillgraph.Skill
	item    Item
	mode    mastery.Mode
	score   float64
	factors Factors
}

// Build computes the daily plan. Pure: identical inputs yield an identical
// plan, so a plan may be recomputed speculatively and discarded at any time.
//
// Candidates are every (skill, item, mode) triple where the item is active,
// exercises the skill in a format the skill is assessed in, and the skill's
// prerequisites all have at least one recorded attempt. Each candidate gets
// a composite score from four weighted factors plus a phase adjustment, then
// the best mode per item survives and tasks are packed greedily by score,
// skipping any candidate that would overflow the remaining minutes. An
// infeasible budget yields an empty plan, not an error.
func Build(p tuning.PlannerParams, in Input) Plan {
	plan := Plan{
		GeneratedAt:   in.Now,
		Phase:         in.Phase,
		BudgetMinutes: in.BudgetMinutes,
	}
	if in.BudgetMinutes <= 0 || in.Graph == nil {
		return plan
	}

	candidates := gather(in)
	if len(candidates) == 0 {
		return plan
	}

	maxDebt := 0.0
	for _, c := range candidates {
		if d := in.Debts[c.skill.ID]; d > maxDebt {
			maxDebt = d
		}
	}
	for i := range candidates {
		candidates[i].score, candidates[i].factors = score(p, in, candidates[i], maxDebt)
	}

	ordered := rankCandidates(candidates)
	ordered = bestModePerItem(ordered)

	remaining := in.BudgetMinutes
	perSkill := make(map[string]int)
	for _, c := range ordered {
		if c.item.EstimatedMinutes > remaining {
			continue
		}
		if p.MaxTasksPerSkill > 0 && perSkill[c.skill.ID] >= p.MaxTasksPerSkill {
			continue
		}
		plan.Tasks = append(plan.Tasks, Task{
			SkillID:          c.skill.ID,
			SkillName:        c.skill.Name,
			ItemID:           c.item.ID,
			Mode:             c.mode,
			Format:           c.item.Format,
			Difficulty:       c.item.Difficulty,
			EstimatedMinutes: c.item.EstimatedMinutes,
			Score:            c.score,
			Factors:          c.factors,
			Rationale:        rationale(p, c, in),
		})
		perSkill[c.skill.ID]++
		remaining -= c.item.EstimatedMinutes
		if remaining == 0 {
			break
		}
	}
	plan.PlannedMinutes = in.BudgetMinutes - remaining
	return plan
}

// gather enumerates the eligible (skill, item, mode) triples. Ineligible
// skills are filtered here, before scoring.
func gather(in Input) []candidate {
	attempted := attemptedSkills(in.States)

	var out []candidate
	for _, it := range in.Items {
		if !it.Active || it.EstimatedMinutes <= 0 {
			continue
		}
		for _, skillID := range sortedSkillIDs(it.SkillWeights) {
			if it.SkillWeights[skillID] <= 0 {
				continue
			}
			sk, err := in.Graph.Skill(skillID)
			if err != nil {
				continue
			}
			if !sk.SupportsFormat(it.Format) {
				continue
			}
			if !in.Graph.Eligible(skillID, attempted) {
				continue
			}
			for _, mode := range mastery.AllModes() {
				out = append(out, candidate{skill: sk, item: it, mode: mode})
			}
		}
	}
	return out
}

func attemptedSkills(states map[string]mastery.State) map[string]bool {
	attempted := make(map[string]bool, len(states))
	for id, st := range states {
		if st.AttemptCount > 0 {
			attempted[id] = true
		}
	}
	return attempted
}

func sortedSkillIDs(weights map[string]float64) []string {
	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// score computes the composite priority of one candidate. The four factors
// are each normalized to [0,1] before weighting; the phase adjustment is
// added on top.
func score(p tuning.PlannerParams, in Input, c candidate, maxDebt float64) (float64, Factors) {
	var f Factors

	f.LearningGain = 1.0
	if st, ok := in.States[c.skill.ID]; ok {
		f.LearningGain = 1.0 - st.PMastery
		f.RetentionGain = retentionGain(p, st, in.Now)
	}
	if maxDebt > 0 {
		f.ExamROI = in.Debts[c.skill.ID] / maxDebt
	}
	f.ErrorClosure = errorClosure(in.RecentErrorTags, c.item.ErrorTags)
	f.PhaseAdjust = phaseAdjust(p, in.Phase, c)

	composite := p.LearningGainWeight*f.LearningGain +
		p.RetentionGainWeight*f.RetentionGain +
		p.ExamROIWeight*f.ExamROI +
		p.ErrorClosureWeight*f.ErrorClosure +
		f.PhaseAdjust
	return composite, f
}

// retentionGain is 0 until the skill's review date arrives, RetentionBase on
// the due day, and climbs linearly to 1.0 as the review goes stale over
// OverdueSaturationDays.
func retentionGain(p tuning.PlannerParams, st mastery.State, now time.Time) float64 {
	if st.NextReviewDate == nil {
		return 0
	}
	today := startOfDay(now)
	due := startOfDay(*st.NextReviewDate)
	if today.Before(due) {
		return 0
	}
	overdue := today.Sub(due).Hours() / 24.0
	frac := 1.0
	if p.OverdueSaturationDays > 0 {
		frac = math.Min(1, overdue/p.OverdueSaturationDays)
	}
	return p.RetentionBase + (1.0-p.RetentionBase)*frac
}

// errorClosure is the share of the learner's current error signature the
// item's diagnostic tags address.
func errorClosure(signature, itemTags []string) float64 {
	if len(signature) == 0 || len(itemTags) == 0 {
		return 0
	}
	targets := make(map[string]bool, len(itemTags))
	for _, tag := range itemTags {
		targets[tag] = true
	}
	hits := 0
	for _, tag := range signature {
		if targets[tag] {
			hits++
		}
	}
	return float64(hits) / float64(len(signature))
}

// phaseAdjust shifts priorities by exam proximity: the critical window
// favors exam-conditions modes and heavyweight skills, the distant window
// favors low-difficulty foundation work.
func phaseAdjust(p tuning.PlannerParams, phase examphase.Phase, c candidate) float64 {
	switch phase {
	case examphase.PhaseCritical:
		boost := p.CriticalWeightBoost * c.skill.ExamWeight
		if mastery.ExamConditions(c.mode) {
			boost += p.CriticalModeBoost
		}
		return boost
	case examphase.PhaseDistant:
		return p.DistantFoundationBoost * foundationScore(c.item.Difficulty)
	default:
		return 0
	}
}

// foundationScore is 1.0 for the easiest tier and falls linearly to 0 at
// the hardest.
func foundationScore(difficulty int) float64 {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return 1.0 - float64(difficulty-1)/4.0
}

// rankCandidates orders by score descending, breaking ties by higher exam
// weight, then lower difficulty, then skill ID, item ID and mode rank so
// the plan is fully deterministic.
func rankCandidates(candidates []candidate) []candidate {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.skill.ExamWeight != b.skill.ExamWeight {
			return a.skill.ExamWeight > b.skill.ExamWeight
		}
		if a.item.Difficulty != b.item.Difficulty {
			return a.item.Difficulty < b.item.Difficulty
		}
		if a.skill.ID != b.skill.ID {
			return a.skill.ID < b.skill.ID
		}
		if a.item.ID != b.item.ID {
			return a.item.ID < b.item.ID
		}
		return modeRank(a.mode) < modeRank(b.mode)
	})
	return candidates
}

// bestModePerItem keeps only the first (highest ranked) candidate for each
// item, so no item is assigned twice in one plan.
func bestModePerItem(ordered []candidate) []candidate {
	seen := make(map[string]bool, len(ordered))
	out := ordered[:0]
	for _, c := range ordered {
		if seen[c.item.ID] {
			continue
		}
		seen[c.item.ID] = true
		out = append(out, c)
	}
	return out
}

func modeRank(m mastery.Mode) int {
	switch m {
	case mastery.ModePractice:
		return 0
	case mastery.ModeTimed:
		return 1
	default:
		return 2
	}
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
