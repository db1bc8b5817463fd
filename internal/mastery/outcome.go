package mastery

import (
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
)

// Mode is the condition an attempt was made under.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeTimed    Mode = "timed"
	ModeExamSim  Mode = "exam_sim"
)

// AllModes returns every attempt mode.
func AllModes() []Mode {
	return []Mode{ModePractice, ModeTimed, ModeExamSim}
}

// ValidMode reports whether m is a known mode.
func ValidMode(m Mode) bool {
	switch m {
	case ModePractice, ModeTimed, ModeExamSim:
		return true
	}
	return false
}

// ExamConditions reports whether the mode counts as exam-like for gate
// verification purposes.
func ExamConditions(m Mode) bool {
	return m == ModeTimed || m == ModeExamSim
}

// Outcome is one graded attempt projected onto a single skill, the input to
// Update. CoverageWeight is the fraction of the item's contribution that
// belongs to this skill.
type Outcome struct {
	ScoreNorm      float64
	Format         skillgraph.Format
	Mode           Mode
	Difficulty     int // item difficulty tier, 1-5
	CoverageWeight float64
	OccurredAt     time.Time
}

// SkillAttempt is a historical attempt record projected onto one skill, the
// shape the gate and diagnosis components read.
type SkillAttempt struct {
	AttemptID  string
	Format     skillgraph.Format
	Mode       Mode
	ScoreNorm  float64
	ErrorTags  []string
	OccurredAt time.Time
}
