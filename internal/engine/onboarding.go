package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// OnboardingInput seeds a new user: one self-assessment level (1 = novice,
// 5 = confident) per unit, plus exam dates and the daily study budget.
type OnboardingInput struct {
	UserID             uuid.UUID
	Levels             map[skillgraph.Unit]int
	WrittenExamDate    *time.Time
	OralExamDate       *time.Time
	DailyBudgetMinutes int
}

// OnboardingResult reports what the seeding pass did.
type OnboardingResult struct {
	SkillsSeeded int                `json:"skills_seeded"`
	SkillsKept   int                `json:"skills_kept"`
	Profile      *store.ExamProfile `json:"profile"`
}

// Onboard seeds mastery priors from self-assessment levels and stores the
// exam profile. Only skills with no existing state are seeded, so repeating
// onboarding never overwrites real practice history.
func (s *Service) Onboard(ctx context.Context, in OnboardingInput) (*OnboardingResult, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	for unit, level := range in.Levels {
		if level < 1 || level > 5 {
			return nil, fmt.Errorf("%w: level %d for unit %q outside 1..5", ErrValidation, level, unit)
		}
		if len(s.graph.ByUnit(unit)) == 0 {
			return nil, fmt.Errorf("%w: unknown unit %q", ErrValidation, unit)
		}
	}

	res := &OnboardingResult{}
	for _, unit := range skillgraph.AllUnits() {
		level, ok := in.Levels[unit]
		if !ok {
			continue
		}
		for _, sk := range s.graph.ByUnit(unit) {
			_, err := s.repos.MasteryStates.Get(ctx, in.UserID, sk.ID)
			if err == nil {
				res.SkillsKept++
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("load state %s: %w", sk.ID, err)
			}

			st := mastery.NewStateWithPrior(s.cfg.Mastery, sk.ID, level)
			if err := s.repos.MasteryStates.Create(ctx, newStateRow(in.UserID, st)); err != nil {
				if errors.Is(err, store.ErrConflict) {
					res.SkillsKept++
					continue
				}
				return nil, fmt.Errorf("seed state %s: %w", sk.ID, err)
			}
			res.SkillsSeeded++
		}
	}

	budget := in.DailyBudgetMinutes
	if budget <= 0 {
		budget = defaultDailyBudgetMinutes
	}
	profile := &store.ExamProfile{
		UserID:             in.UserID,
		WrittenExamDate:    in.WrittenExamDate,
		OralExamDate:       in.OralExamDate,
		DailyBudgetMinutes: budget,
		OnboardingDone:     true,
	}
	if err := s.repos.Profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save exam profile: %w", err)
	}
	res.Profile = profile

	if err := s.cache.Invalidate(ctx, in.UserID); err != nil {
		s.log.Warn("invalidate plan cache", "user_id", in.UserID, "err", err)
	}
	s.log.Info("onboarding complete",
		"user_id", in.UserID, "seeded", res.SkillsSeeded, "kept", res.SkillsKept)
	return res, nil
}

// ExamProfileInput updates a user's exam dates and study budget.
type ExamProfileInput struct {
	UserID             uuid.UUID
	WrittenExamDate    *time.Time
	OralExamDate       *time.Time
	DailyBudgetMinutes int
}

// SaveExamProfile upserts the profile and invalidates the cached plan,
// since phase and budget feed straight into planning. A zero budget falls
// back to the default; the onboarding flag is preserved.
func (s *Service) SaveExamProfile(ctx context.Context, in ExamProfileInput) (*store.ExamProfile, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	if in.DailyBudgetMinutes < 0 {
		return nil, fmt.Errorf("%w: negative daily budget", ErrValidation)
	}
	budget := in.DailyBudgetMinutes
	if budget == 0 {
		budget = defaultDailyBudgetMinutes
	}

	onboarded := false
	existing, err := s.repos.Profiles.Get(ctx, in.UserID)
	switch {
	case err == nil:
		onboarded = existing.OnboardingDone
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("load exam profile: %w", err)
	}

	row := &store.ExamProfile{
		UserID:             in.UserID,
		WrittenExamDate:    in.WrittenExamDate,
		OralExamDate:       in.OralExamDate,
		DailyBudgetMinutes: budget,
		OnboardingDone:     onboarded,
	}
	if err := s.repos.Profiles.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("save exam profile: %w", err)
	}

	if err := s.cache.Invalidate(ctx, in.UserID); err != nil {
		s.log.Warn("invalidate plan cache", "user_id", in.UserID, "err", err)
	}
	return row, nil
}
