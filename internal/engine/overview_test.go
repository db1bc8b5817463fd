package engine

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

func TestReadinessOverview_AggregatesUnits(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := env.svc.Onboard(ctx, OnboardingInput{
		UserID: user,
		Levels: map[skillgraph.Unit]int{skillgraph.UnitContractLaw: 2},
	})
	require.NoError(t, err)
	_, err = env.svc.SubmitAttempt(ctx, AttemptInput{
		UserID:       user,
		ItemID:       "it-con",
		Format:       skillgraph.FormatMCQ,
		Mode:         mastery.ModePractice,
		Difficulty:   3,
		ScoreNorm:    0.8,
		SkillWeights: map[string]float64{"con-basics": 1},
	})
	require.NoError(t, err)

	ov, err := env.svc.ReadinessOverview(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, examphase.PhaseNone, ov.Phase)
	assert.Equal(t, examphase.ModeMixed, ov.DominantMode)
	assert.Nil(t, ov.WrittenDaysLeft)
	assert.Equal(t, 0, ov.VerifiedSkills)
	assert.Equal(t, 0, ov.DueCards)

	require.Len(t, ov.Units, 2)
	contract, public := ov.Units[0], ov.Units[1]

	assert.Equal(t, skillgraph.UnitContractLaw, contract.Unit)
	assert.Equal(t, "Contract Law", contract.UnitName)
	assert.Equal(t, 2, contract.Skills)
	assert.Equal(t, 2, contract.Studying)
	assert.InDelta(t, 0.2, contract.MeanPMastery, 1e-9)
	assert.InDelta(t, 0.2, contract.WeightedReadiness, 1e-9)
	// Seeded but never practiced: both skills owe full staleness debt,
	// heavier exam weight first.
	require.Len(t, contract.TopDebts, 2)
	assert.Equal(t, "civ-contracts", contract.TopDebts[0].SkillID)
	assert.InDelta(t, 0.9*math.Log(31), contract.TopDebts[0].Debt, 1e-9)

	assert.Equal(t, skillgraph.UnitPublicLaw, public.Unit)
	assert.Equal(t, 1, public.Practicing)
	assert.Equal(t, 1, public.Studying)
	assert.InDelta(t, 0.045, public.MeanPMastery, 1e-9)
	// The freshly practiced skill owes nothing; only the locked one shows.
	require.Len(t, public.TopDebts, 1)
	assert.Equal(t, "con-rights", public.TopDebts[0].SkillID)
}

func TestReadinessOverview_PhaseFromNearestExam(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	user := uuid.New()

	written := engineNow.AddDate(0, 0, 100)
	oral := engineNow.AddDate(0, 0, 10)
	_, err := env.svc.SaveExamProfile(ctx, ExamProfileInput{
		UserID:          user,
		WrittenExamDate: &written,
		OralExamDate:    &oral,
	})
	require.NoError(t, err)

	require.NoError(t, env.repos.MasteryStates.Create(ctx, &store.MasteryState{
		UserID:   user,
		SkillID:  "civ-contracts",
		PMastery: 0.9,
		Gate:     "EXAM_READY",
	}))
	_, err = env.svc.AddCard(ctx, user, "card-due")
	require.NoError(t, err)

	ov, err := env.svc.ReadinessOverview(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, examphase.PhaseApproaching, ov.Phase)
	assert.Equal(t, examphase.ModeOral, ov.DominantMode)
	require.NotNil(t, ov.WrittenDaysLeft)
	assert.Equal(t, 100, *ov.WrittenDaysLeft)
	require.NotNil(t, ov.OralDaysLeft)
	assert.Equal(t, 10, *ov.OralDaysLeft)

	assert.Equal(t, 1, ov.VerifiedSkills)
	assert.Equal(t, 1, ov.Units[0].ExamReady)
	assert.Equal(t, 1, ov.DueCards)
}
