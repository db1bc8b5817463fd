package mastery

import (
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// GateState represents a skill's position in the exam-readiness lifecycle.
type GateState string

const (
	GateStudying   GateState = "STUDYING"
	GatePracticing GateState = "PRACTICING"
	GateExamReady  GateState = "EXAM_READY"
)

// State holds the proficiency estimate for one (user, skill) pair. PMastery
// and Stability are written only by Update; the gate fields are written only
// by the gate state machine. Callers persist the returned values, the engine
// itself keeps nothing.
type State struct {
	SkillID         string
	PMastery        float64 // point estimate of proficiency, 0-1
	Stability       float64 // consistency measure, consumed by the gate
	AttemptCount    int
	CorrectCount    int
	LastPracticedAt *time.Time
	NextReviewDate  *time.Time
	Gate            GateState
	GatePassedAt    *time.Time
}

// NewState returns the state of a skill that has never been attempted.
func NewState(p tuning.MasteryParams, skillID string) State {
	return State{
		SkillID:   skillID,
		PMastery:  0,
		Stability: p.InitialStability,
		Gate:      GateStudying,
	}
}

// NewStateWithPrior seeds a fresh state from an onboarding self-assessment
// level (1 = novice .. 5 = confident). Levels outside that range seed no
// prior at all.
func NewStateWithPrior(p tuning.MasteryParams, skillID string, level int) State {
	s := NewState(p, skillID)
	if level >= 1 && level <= 5 {
		s.PMastery = clamp01(p.PriorPerLevel * float64(level))
	}
	return s
}

// Accuracy returns the lifetime pass ratio for the skill.
func (s State) Accuracy() float64 {
	if s.AttemptCount == 0 {
		return 0.0
	}
	return float64(s.CorrectCount) / float64(s.AttemptCount)
}
