package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/coverage"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/diagnosis"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/plancache"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/planner"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// recentAttemptsForSignature is how far back the user-level error signature
// looks. Older attempts still count toward coverage, just not the signature.
const recentAttemptsForSignature = 50

// GetPlan returns the user's current daily plan, building and caching one on
// a cache miss.
func (s *Service) GetPlan(ctx context.Context, userID uuid.UUID) (*planner.Plan, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	plan, err := s.cache.Get(ctx, userID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, plancache.ErrMiss) {
		s.log.Warn("plan cache read", "user_id", userID, "err", err)
	}
	return s.buildAndCache(ctx, userID, false)
}

// RebuildPlan builds a fresh plan regardless of what is cached and announces
// it when done.
func (s *Service) RebuildPlan(ctx context.Context, userID uuid.UUID) (*planner.Plan, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	return s.buildAndCache(ctx, userID, true)
}

// RebuildAll regenerates plans for every user with an exam profile, at most
// planWorkers at a time. Plans for different users share no mutable state,
// so the fan-out needs no coordination beyond the bound; a failed user
// cancels the remainder.
func (s *Service) RebuildAll(ctx context.Context) (int, error) {
	ids, err := s.repos.Profiles.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.planWorkers)
	for _, id := range ids {
		id := id // per-iteration copy; required for correctness while go.mod declares go < 1.22
		g.Go(func() error {
			if _, err := s.buildAndCache(ctx, id, true); err != nil {
				return fmt.Errorf("rebuild plan for %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *Service) buildAndCache(ctx context.Context, userID uuid.UUID, announce bool) (*planner.Plan, error) {
	in, err := s.planInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan := planner.Build(s.cfg.Planner, *in)
	if err := s.cache.Set(ctx, userID, &plan); err != nil {
		s.log.Warn("plan cache write", "user_id", userID, "err", err)
	}
	s.log.Info("plan built",
		"user_id", userID, "phase", string(plan.Phase),
		"tasks", len(plan.Tasks), "planned_minutes", plan.PlannedMinutes)
	if announce {
		s.notifier.PlanReady(ctx, userID, len(plan.Tasks))
	}
	return &plan, nil
}

// planInput resolves everything the pure plan builder reads: profile and
// phase, mastery states, coverage debts, the error signature and the active
// item catalog.
func (s *Service) planInput(ctx context.Context, userID uuid.UUID) (*planner.Input, error) {
	now := s.now()

	profile, err := s.repos.Profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load exam profile: %w", err)
	}
	budget := defaultDailyBudgetMinutes
	if profile != nil && profile.DailyBudgetMinutes > 0 {
		budget = profile.DailyBudgetMinutes
	}
	phase, _, _, _ := s.phaseFor(profile, now)

	states, err := s.statesBySkill(ctx, userID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.repos.Attempts.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	rows, err := s.repos.Items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	items := make([]planner.Item, len(rows))
	for i, r := range rows {
		items[i] = itemFromRow(r)
	}

	return &planner.Input{
		BudgetMinutes:   budget,
		Phase:           phase,
		Graph:           s.graph,
		States:          states,
		Debts:           s.debts(states, attempts, now),
		Items:           items,
		RecentErrorTags: s.signature(attempts),
		Now:             now,
	}, nil
}

// phaseFor derives the scheduling phase and dominant preparation mode from
// the profile's exam dates. The nearer upcoming exam decides the phase; a
// nil profile means no dates are known.
func (s *Service) phaseFor(profile *store.ExamProfile, now time.Time) (examphase.Phase, examphase.Mode, *int, *int) {
	var written, oral *int
	if profile != nil {
		written = examphase.DaysUntil(now, profile.WrittenExamDate)
		oral = examphase.DaysUntil(now, profile.OralExamDate)
	}
	phase := examphase.Classify(nearestUpcoming(written, oral), s.cfg.Phase)
	mode := examphase.DominantMode(written, oral, s.cfg.Phase)
	return phase, mode, written, oral
}

// nearestUpcoming picks the smaller non-negative day count. Past or absent
// dates are ignored.
func nearestUpcoming(a, b *int) *int {
	if a != nil && *a < 0 {
		a = nil
	}
	if b != nil && *b < 0 {
		b = nil
	}
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a <= *b:
		return a
	default:
		return b
	}
}

func (s *Service) statesBySkill(ctx context.Context, userID uuid.UUID) (map[string]mastery.State, error) {
	rows, err := s.repos.MasteryStates.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load mastery states: %w", err)
	}
	states := make(map[string]mastery.State, len(rows))
	for i := range rows {
		states[rows[i].SkillID] = stateFromRow(&rows[i])
	}
	return states, nil
}

// debts computes the coverage debt for every curriculum skill from the
// user's states and attempt history.
func (s *Service) debts(states map[string]mastery.State, attempts []store.Attempt, now time.Time) map[string]float64 {
	formats := formatsBySkill(attempts)
	debts := make(map[string]float64, s.graph.Len())
	for _, sk := range s.graph.All() {
		var last *time.Time
		if st, ok := states[sk.ID]; ok {
			last = st.LastPracticedAt
		}
		debts[sk.ID] = coverage.Debt(s.cfg.Debt, sk, formats[sk.ID], last, now)
	}
	return debts
}

// formatsBySkill maps each skill to the set of formats it has been
// attempted in, unpacked from the attempts' skill-weight columns.
func formatsBySkill(attempts []store.Attempt) map[string]map[skillgraph.Format]bool {
	out := make(map[string]map[skillgraph.Format]bool)
	for _, att := range attempts {
		f := skillgraph.Format(att.Format)
		if f == "" {
			continue
		}
		for skillID := range store.Weights(att.SkillWeights) {
			if out[skillID] == nil {
				out[skillID] = make(map[skillgraph.Format]bool)
			}
			out[skillID][f] = true
		}
	}
	return out
}

// signature derives the user-level error signature from the most recent
// attempts (the list arrives newest first).
func (s *Service) signature(attempts []store.Attempt) []string {
	if len(attempts) > recentAttemptsForSignature {
		attempts = attempts[:recentAttemptsForSignature]
	}
	recent := make([]mastery.SkillAttempt, len(attempts))
	for i, att := range attempts {
		recent[i] = mastery.SkillAttempt{ErrorTags: store.Strings(att.ErrorTags)}
	}
	return diagnosis.Signature(recent, s.cfg.Gate.TopErrorTags)
}
