package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/coverage"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// topDebtsPerUnit bounds the coverage-debt list shown per unit.
const topDebtsPerUnit = 3

// UnitReadiness aggregates gate and mastery standing across one unit.
type UnitReadiness struct {
	Unit       skillgraph.Unit `json:"unit"`
	UnitName   string          `json:"unit_name"`
	Skills     int             `json:"skills"`
	ExamReady  int             `json:"exam_ready"`
	Practicing int             `json:"practicing"`
	Studying   int             `json:"studying"`
	// MeanPMastery averages over every skill in the unit; skills never
	// attempted count as zero.
	MeanPMastery float64 `json:"mean_p_mastery"`
	// WeightedReadiness is the exam-weight-weighted mastery average, the
	// closest single number to "how ready is this unit on exam day".
	WeightedReadiness float64              `json:"weighted_readiness"`
	TopDebts          []coverage.SkillDebt `json:"top_debts,omitempty"`
}

// Overview is the readiness dashboard for one user.
type Overview struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	Phase           examphase.Phase `json:"phase"`
	DominantMode    examphase.Mode  `json:"dominant_mode"`
	WrittenDaysLeft *int            `json:"written_days_left,omitempty"`
	OralDaysLeft    *int            `json:"oral_days_left,omitempty"`
	Units           []UnitReadiness `json:"units"`
	VerifiedSkills  int             `json:"verified_skills"`
	DueCards        int             `json:"due_cards"`
}

// ReadinessOverview aggregates the user's standing per curriculum unit:
// gate-state counts, mastery averages and the top coverage debts, plus the
// exam phase and the size of the review backlog.
func (s *Service) ReadinessOverview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	now := s.now()

	profile, err := s.repos.Profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load exam profile: %w", err)
	}
	phase, mode, written, oral := s.phaseFor(profile, now)

	states, err := s.statesBySkill(ctx, userID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.repos.Attempts.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	debts := s.debts(states, attempts, now)

	ov := &Overview{
		GeneratedAt:     now,
		Phase:           phase,
		DominantMode:    mode,
		WrittenDaysLeft: written,
		OralDaysLeft:    oral,
	}

	for _, unit := range skillgraph.AllUnits() {
		skills := s.graph.ByUnit(unit)
		if len(skills) == 0 {
			continue
		}
		ur := UnitReadiness{
			Unit:     unit,
			UnitName: skillgraph.UnitDisplayName(unit),
			Skills:   len(skills),
		}
		var pSum, weightSum, weightedSum float64
		unitDebts := make(map[string]float64, len(skills))
		for _, sk := range skills {
			var p float64
			if st, ok := states[sk.ID]; ok {
				p = st.PMastery
				switch st.Gate {
				case mastery.GateExamReady:
					ur.ExamReady++
				case mastery.GatePracticing:
					ur.Practicing++
				default:
					ur.Studying++
				}
			} else {
				ur.Studying++
			}
			pSum += p
			weightSum += sk.ExamWeight
			weightedSum += sk.ExamWeight * p
			if debts[sk.ID] > 0 {
				unitDebts[sk.ID] = debts[sk.ID]
			}
		}
		ur.MeanPMastery = pSum / float64(len(skills))
		if weightSum > 0 {
			ur.WeightedReadiness = weightedSum / weightSum
		}
		ranked := coverage.Rank(unitDebts)
		if len(ranked) > topDebtsPerUnit {
			ranked = ranked[:topDebtsPerUnit]
		}
		ur.TopDebts = ranked
		ov.Units = append(ov.Units, ur)
	}

	for _, st := range states {
		if st.Gate == mastery.GateExamReady {
			ov.VerifiedSkills++
		}
	}

	due, err := s.DueCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	ov.DueCards = len(due)

	return ov, nil
}
