package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/gate"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
)

// conflictRetries bounds how often one skill update is re-read and
// re-applied after losing a version race. Every retry starts from freshly
// read state.
const conflictRetries = 3

// AttemptInput is one graded submission as the grading service reports it.
// SkillWeights may be left empty when the item is in the catalog; the
// item's own skill mapping is used then.
type AttemptInput struct {
	UserID       uuid.UUID
	ItemID       string
	Format       skillgraph.Format
	Mode         mastery.Mode
	Difficulty   int
	ScoreNorm    float64
	ErrorTags    []string
	SkillWeights map[string]float64
	OccurredAt   time.Time
}

// SkillUpdate reports the effect of one attempt on one skill.
type SkillUpdate struct {
	SkillID        string            `json:"skill_id"`
	Weight         float64           `json:"weight"`
	PMastery       float64           `json:"p_mastery"`
	Delta          float64           `json:"delta"`
	Stability      float64           `json:"stability"`
	Gate           mastery.GateState `json:"gate"`
	Verified       bool              `json:"verified"`
	NextReviewDate *time.Time        `json:"next_review_date,omitempty"`
}

// AttemptResult is the outcome of ingesting one attempt.
type AttemptResult struct {
	AttemptID  uuid.UUID     `json:"attempt_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Updates    []SkillUpdate `json:"updates"`
}

// SubmitAttempt ingests one graded submission. The immutable attempt is
// persisted first, then fanned out to every mapped skill: each skill runs
// through the pure mastery update and the readiness gate independently, in
// skill ID order. The user's cached plan is invalidated afterwards.
//
// Unknown formats, modes and difficulty tiers pass through unchanged; the
// update math falls back to neutral weights for them. Unknown skill IDs are
// dropped from the fan-out with a warning; an attempt mapping to no known
// skill at all is rejected.
func (s *Service) SubmitAttempt(ctx context.Context, in AttemptInput) (*AttemptResult, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrValidation)
	}
	if in.ItemID == "" {
		return nil, fmt.Errorf("%w: missing item id", ErrValidation)
	}
	if in.ScoreNorm < 0 || in.ScoreNorm > 1 {
		return nil, fmt.Errorf("%w: score_norm %g outside [0,1]", ErrValidation, in.ScoreNorm)
	}

	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = s.now()
	}
	occurred = occurred.UTC()
	in.ErrorTags = cleanTags(in.ErrorTags)

	weights, err := s.resolveWeights(ctx, in)
	if err != nil {
		return nil, err
	}

	att := &store.Attempt{
		UserID:       in.UserID,
		ItemID:       in.ItemID,
		Format:       string(in.Format),
		Mode:         string(in.Mode),
		Difficulty:   in.Difficulty,
		ScoreNorm:    in.ScoreNorm,
		ErrorTags:    store.JSON(in.ErrorTags),
		SkillWeights: store.JSON(weightMap(weights)),
		OccurredAt:   occurred,
	}
	skillRows := make([]store.AttemptSkill, len(weights))
	for i, w := range weights {
		skillRows[i] = store.AttemptSkill{
			UserID:     in.UserID,
			SkillID:    w.skillID,
			Weight:     w.weight,
			ScoreNorm:  in.ScoreNorm,
			Format:     string(in.Format),
			Mode:       string(in.Mode),
			ErrorTags:  store.JSON(in.ErrorTags),
			OccurredAt: occurred,
		}
	}
	if err := s.repos.Attempts.Insert(ctx, att, skillRows); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	res := &AttemptResult{AttemptID: att.ID, OccurredAt: occurred}
	for _, w := range weights {
		upd, err := s.applyToSkill(ctx, in, w, occurred)
		if err != nil {
			return nil, fmt.Errorf("update skill %s: %w", w.skillID, err)
		}
		res.Updates = append(res.Updates, *upd)
	}

	if err := s.cache.Invalidate(ctx, in.UserID); err != nil {
		s.log.Warn("invalidate plan cache", "user_id", in.UserID, "err", err)
	}
	s.log.Info("attempt ingested",
		"user_id", in.UserID, "item_id", in.ItemID,
		"score_norm", in.ScoreNorm, "skills", len(res.Updates))
	return res, nil
}

type skillWeight struct {
	skillID string
	weight  float64
}

// resolveWeights returns the validated (skill, weight) fan-out list sorted
// by skill ID, falling back to the item catalog mapping when the payload
// carries none.
func (s *Service) resolveWeights(ctx context.Context, in AttemptInput) ([]skillWeight, error) {
	raw := in.SkillWeights
	if len(raw) == 0 {
		item, err := s.repos.Items.Get(ctx, in.ItemID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: no skill weights and item %q not in catalog", ErrValidation, in.ItemID)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve item %q: %w", in.ItemID, err)
		}
		raw = store.Weights(item.SkillWeights)
	}

	weights := make([]skillWeight, 0, len(raw))
	for id, w := range raw {
		if !s.graph.Has(id) {
			s.log.Warn("attempt maps unknown skill", "item_id", in.ItemID, "skill_id", id)
			continue
		}
		if w <= 0 {
			s.log.Warn("attempt carries non-positive weight", "item_id", in.ItemID, "skill_id", id, "weight", w)
			continue
		}
		weights = append(weights, skillWeight{skillID: id, weight: w})
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: attempt maps to no known skill", ErrValidation)
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].skillID < weights[j].skillID })
	return weights, nil
}

func weightMap(weights []skillWeight) map[string]float64 {
	m := make(map[string]float64, len(weights))
	for _, w := range weights {
		m[w.skillID] = w.weight
	}
	return m
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// applyToSkill runs the pure update and gate for one fanned-out skill and
// persists the result. A lost version race re-reads everything and
// re-applies; after conflictRetries the conflict surfaces to the caller.
func (s *Service) applyToSkill(ctx context.Context, in AttemptInput, w skillWeight, occurred time.Time) (*SkillUpdate, error) {
	outcome := mastery.Outcome{
		ScoreNorm:      in.ScoreNorm,
		Format:         in.Format,
		Mode:           in.Mode,
		Difficulty:     in.Difficulty,
		CoverageWeight: w.weight,
		OccurredAt:     occurred,
	}

	for try := 0; ; try++ {
		rows, err := s.repos.Attempts.SkillHistory(ctx, in.UserID, w.skillID)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		history := historyFromRows(rows)

		var st mastery.State
		fresh := false
		row, err := s.repos.MasteryStates.Get(ctx, in.UserID, w.skillID)
		switch {
		case err == nil:
			st = stateFromRow(row)
		case errors.Is(err, store.ErrNotFound):
			fresh = true
			st = mastery.NewState(s.cfg.Mastery, w.skillID)
		default:
			return nil, fmt.Errorf("load state: %w", err)
		}

		prev := st.PMastery
		next := mastery.Update(s.cfg.Mastery, st, outcome)
		next, verification := gate.Advance(s.cfg, next, history, occurred)

		if fresh {
			row = newStateRow(in.UserID, next)
			err = s.repos.MasteryStates.Create(ctx, row)
		} else {
			applyState(row, next)
			err = s.repos.MasteryStates.Update(ctx, row)
		}
		if errors.Is(err, store.ErrConflict) && try < conflictRetries {
			s.log.Warn("state write raced, re-reading", "skill_id", w.skillID, "try", try+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save state: %w", err)
		}

		if verification != nil {
			s.recordVerification(ctx, in.UserID, verification)
		}

		return &SkillUpdate{
			SkillID:        w.skillID,
			Weight:         w.weight,
			PMastery:       next.PMastery,
			Delta:          next.PMastery - prev,
			Stability:      next.Stability,
			Gate:           next.Gate,
			Verified:       verification != nil,
			NextReviewDate: next.NextReviewDate,
		}, nil
	}
}

// recordVerification persists the audit row and announces it. Best-effort:
// the state transition already committed, so a failure here costs only the
// audit record.
func (s *Service) recordVerification(ctx context.Context, userID uuid.UUID, v *gate.Verification) {
	row := &store.SkillVerification{
		UserID:          userID,
		SkillID:         v.SkillID,
		PMastery:        v.PMastery,
		FirstAttemptID:  v.FirstAttemptID,
		SecondAttemptID: v.SecondAttemptID,
		HoursBetween:    v.HoursBetween,
		TagsCleared:     store.JSON(v.TagsCleared),
		VerifiedAt:      v.VerifiedAt,
	}
	if err := s.repos.Verifications.Insert(ctx, row); err != nil {
		s.log.Error("persist verification", "skill_id", v.SkillID, "err", err)
		return
	}
	s.log.Info("skill verified", "user_id", userID, "skill_id", v.SkillID, "p_mastery", v.PMastery)
	s.notifier.SkillVerified(ctx, userID, v.SkillID)
}

// GateStatus reports a skill's gate position and, while it is still blocked,
// the unmet conditions.
type GateStatus struct {
	SkillID    string               `json:"skill_id"`
	SkillName  string               `json:"skill_name"`
	Gate       mastery.GateState    `json:"gate"`
	PMastery   float64              `json:"p_mastery"`
	Stability  float64              `json:"stability"`
	Eligible   bool                 `json:"eligible"`
	Reasons    []gate.Reason        `json:"reasons,omitempty"`
	Pair       *gate.QualifyingPair `json:"qualifying_pair,omitempty"`
	Signature  []string             `json:"signature,omitempty"`
	VerifiedAt *time.Time           `json:"verified_at,omitempty"`
}

// SkillGate evaluates the readiness gate for one skill without mutating
// anything. A skill with no recorded practice reports a fresh STUDYING
// state.
func (s *Service) SkillGate(ctx context.Context, userID uuid.UUID, skillID string) (*GateStatus, error) {
	sk, err := s.graph.Skill(skillID)
	if err != nil {
		return nil, fmt.Errorf("skill %q: %w", skillID, store.ErrNotFound)
	}

	var st mastery.State
	row, err := s.repos.MasteryStates.Get(ctx, userID, skillID)
	switch {
	case err == nil:
		st = stateFromRow(row)
	case errors.Is(err, store.ErrNotFound):
		st = mastery.NewState(s.cfg.Mastery, skillID)
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	rows, err := s.repos.Attempts.SkillHistory(ctx, userID, skillID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	res := gate.Evaluate(s.cfg, st, historyFromRows(rows), s.now())
	return &GateStatus{
		SkillID:    skillID,
		SkillName:  sk.Name,
		Gate:       st.Gate,
		PMastery:   st.PMastery,
		Stability:  st.Stability,
		Eligible:   res.Eligible,
		Reasons:    res.Reasons,
		Pair:       res.Pair,
		Signature:  res.Signature,
		VerifiedAt: st.GatePassedAt,
	}, nil
}
