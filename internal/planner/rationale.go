package planner

import (
	"fmt"
	"strings"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/diagnosis"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// rationale renders the user-facing "why this task" line. The dominant
// weighted factor supplies the message; a phase note is appended when the
// phase adjustment shaped the pick.
func rationale(p tuning.PlannerParams, c candidate, in Input) string {
	f := c.factors
	contributions := []struct {
		value float64
		text  string
	}{
		{p.LearningGainWeight * f.LearningGain, learningText(c, in)},
		{p.RetentionGainWeight * f.RetentionGain, retentionText(c, in)},
		{p.ExamROIWeight * f.ExamROI, fmt.Sprintf("high exam value: weight %.2f with coverage gaps", c.skill.ExamWeight)},
		{p.ErrorClosureWeight * f.ErrorClosure, closureText(c, in)},
	}

	best := 0
	for i := range contributions {
		if contributions[i].value > contributions[best].value {
			best = i
		}
	}
	line := contributions[best].text
	if contributions[best].value == 0 {
		line = "keeps practice moving with the time left"
	}

	switch {
	case in.Phase == examphase.PhaseCritical && mastery.ExamConditions(c.mode):
		line += "; exam-conditions practice for the critical phase"
	case in.Phase == examphase.PhaseDistant && f.PhaseAdjust > 0:
		line += "; foundational work while the exam is distant"
	}
	return line
}

func learningText(c candidate, in Input) string {
	pm := 0.0
	if st, ok := in.States[c.skill.ID]; ok {
		pm = st.PMastery
	}
	return fmt.Sprintf("new ground: mastery at %.0f%%", pm*100)
}

func retentionText(c candidate, in Input) string {
	st, ok := in.States[c.skill.ID]
	if !ok || st.NextReviewDate == nil {
		return "review due"
	}
	days := int(startOfDay(in.Now).Sub(startOfDay(*st.NextReviewDate)).Hours() / 24)
	switch {
	case days <= 0:
		return "review due today"
	case days == 1:
		return "review overdue by 1 day"
	default:
		return fmt.Sprintf("review overdue by %d days", days)
	}
}

func closureText(c candidate, in Input) string {
	overlap := diagnosis.Overlap(c.item.ErrorTags, in.RecentErrorTags)
	if len(overlap) == 0 {
		return "targets recent errors"
	}
	labels := make([]string, len(overlap))
	for i, code := range overlap {
		labels[i] = strings.ToLower(diagnosis.TagLabel(code))
	}
	return "targets recent errors: " + strings.Join(labels, ", ")
}
