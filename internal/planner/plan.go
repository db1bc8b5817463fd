package planner

import (
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/examphase"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/mastery"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
)

// Item is a practice item as the content store exposes it: one exercise,
// essay prompt, mock-oral script or MCQ set that can fill a plan slot.
type Item struct {
	ID string `json:"id"`
	// SkillWeights maps each skill the item exercises to the share of that
	// skill's material it covers, in (0,1].
	SkillWeights     map[string]float64 `json:"skill_weights"`
	Format           skillgraph.Format  `json:"format"`
	Difficulty       int                `json:"difficulty"`
	EstimatedMinutes int                `json:"estimated_minutes"`
	// ErrorTags names the error patterns the item was authored to drill.
	ErrorTags []string `json:"error_tags,omitempty"`
	Active    bool     `json:"active"`
}

// Factors is the per-task score breakdown surfaced alongside the rationale.
type Factors struct {
	LearningGain  float64 `json:"learning_gain"`
	RetentionGain float64 `json:"retention_gain"`
	ExamROI       float64 `json:"exam_roi"`
	ErrorClosure  float64 `json:"error_closure"`
	PhaseAdjust   float64 `json:"phase_adjust"`
}

// Task is one scheduled slot of the daily plan.
type Task struct {
	SkillID          string            `json:"skill_id"`
	SkillName        string            `json:"skill_name"`
	ItemID           string            `json:"item_id"`
	Mode             mastery.Mode      `json:"mode"`
	Format           skillgraph.Format `json:"format"`
	Difficulty       int               `json:"difficulty"`
	EstimatedMinutes int               `json:"estimated_minutes"`
	Score            float64           `json:"score"`
	Factors          Factors           `json:"factors"`
	Rationale        string            `json:"rationale"`
}

// Plan is the ordered task list for one study day.
type Plan struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	Phase          examphase.Phase `json:"phase"`
	BudgetMinutes  int             `json:"budget_minutes"`
	PlannedMinutes int             `json:"planned_minutes"`
	Tasks          []Task          `json:"tasks"`
}

// Input carries everything the plan builder reads. All state is supplied
// already resolved; the builder performs no I/O.
type Input struct {
	BudgetMinutes int
	Phase         examphase.Phase
	Graph         *skillgraph.Graph
	// States holds the current mastery state per skill ID. Skills absent
	// from the map count as never attempted.
	States map[string]mastery.State
	// Debts holds the current coverage debt per skill ID.
	Debts map[string]float64
	Items []Item
	// RecentErrorTags is the learner's current error signature, most
	// frequent tag first.
	RecentErrorTags []string
	Now             time.Time
}
