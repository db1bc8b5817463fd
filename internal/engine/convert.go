package engine

import (
	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/planner"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/spacedrep"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// stateFromRow projects a persisted row onto the pure mastery state.
func stateFromRow(row *store.MasteryState) mastery.State {
	return mastery.State{
		SkillID:         row.SkillID,
		PMastery:        row.PMastery,
		Stability:       row.Stability,
		AttemptCount:    row.AttemptCount,
		CorrectCount:    row.CorrectCount,
		LastPracticedAt: row.LastPracticedAt,
		NextReviewDate:  row.NextReviewDate,
		Gate:            mastery.GateState(row.Gate),
		GatePassedAt:    row.GatePassedAt,
	}
}

// applyState writes a computed state back onto the row for persisting. Keys
// and version are left alone.
func applyState(row *store.MasteryState, st mastery.State) {
	row.PMastery = st.PMastery
	row.Stability = st.Stability
	row.AttemptCount = st.AttemptCount
	row.CorrectCount = st.CorrectCount
	row.LastPracticedAt = st.LastPracticedAt
	row.NextReviewDate = st.NextReviewDate
	row.Gate = string(st.Gate)
	row.GatePassedAt = st.GatePassedAt
}

func newStateRow(userID uuid.UUID, st mastery.State) *store.MasteryState {
	row := &store.MasteryState{UserID: userID, SkillID: st.SkillID}
	applyState(row, st)
	return row
}

// historyFromRows converts attempt fan-out rows into the shape the gate and
// diagnosis readers consume. Order is preserved (oldest first as queried).
func historyFromRows(rows []store.AttemptSkill) []mastery.SkillAttempt {
	history := make([]mastery.SkillAttempt, len(rows))
	for i, r := range rows {
		history[i] = mastery.SkillAttempt{
			AttemptID:  r.AttemptID.String(),
			Format:     skillgraph.Format(r.Format),
			Mode:       mastery.Mode(r.Mode),
			ScoreNorm:  r.ScoreNorm,
			ErrorTags:  store.Strings(r.ErrorTags),
			OccurredAt: r.OccurredAt,
		}
	}
	return history
}

func cardFromRow(row *store.Card) spacedrep.Card {
	c := spacedrep.Card{
		CardID:         row.CardID,
		EasinessFactor: row.EasinessFactor,
		IntervalDays:   row.IntervalDays,
		Repetitions:    row.Repetitions,
		NextReviewDate: row.NextReviewDate,
		LastQuality:    row.LastQuality,
		TotalReviews:   row.TotalReviews,
		CorrectReviews: row.CorrectReviews,
		IsActive:       row.IsActive,
	}
	if row.LastReviewDate != nil {
		c.LastReviewDate = *row.LastReviewDate
	}
	return c
}

func applyCard(row *store.Card, c spacedrep.Card) {
	row.EasinessFactor = c.EasinessFactor
	row.IntervalDays = c.IntervalDays
	row.Repetitions = c.Repetitions
	row.NextReviewDate = c.NextReviewDate
	if !c.LastReviewDate.IsZero() {
		last := c.LastReviewDate
		row.LastReviewDate = &last
	}
	row.LastQuality = c.LastQuality
	row.TotalReviews = c.TotalReviews
	row.CorrectReviews = c.CorrectReviews
	row.IsActive = c.IsActive
}

func itemFromRow(row store.Item) planner.Item {
	return planner.Item{
		ID:               row.ID,
		SkillWeights:     store.Weights(row.SkillWeights),
		Format:           skillgraph.Format(row.Format),
		Difficulty:       row.Difficulty,
		EstimatedMinutes: row.EstimatedMinutes,
		ErrorTags:        store.Strings(row.ErrorTags),
		Active:           row.Active,
	}
}
