package tuning

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the single immutable value object holding every tuning constant
// the engine uses. It is injected into the pure functions rather than read
// from globals, so identical inputs always reproduce identical outputs.
type Config struct {
	Mastery MasteryParams `json:"mastery"`
	Gate    GateParams    `json:"gate"`
	Debt    DebtParams    `json:"debt"`
	Planner PlannerParams `json:"planner"`
	SRS     SRSParams     `json:"srs"`
	Phase   PhaseParams   `json:"phase"`
}

// MasteryParams tunes the mastery update function.
type MasteryParams struct {
	// LearningRate scales the raw delta per attempt.
	LearningRate float64 `json:"learning_rate"`
	// DeltaFloor/DeltaCeil clamp a single attempt's effect asymmetrically:
	// one failure may cost at most |DeltaFloor|, one success gains at most DeltaCeil.
	DeltaFloor float64 `json:"delta_floor"`
	DeltaCeil  float64 `json:"delta_ceil"`
	// PassThreshold is the normalized score at or above which an attempt
	// counts as a success.
	PassThreshold float64 `json:"pass_threshold"`
	// Stability moves up on success, down on failure, within [Floor, Ceil].
	StabilityGain  float64 `json:"stability_gain"`
	StabilityLoss  float64 `json:"stability_loss"`
	StabilityFloor float64 `json:"stability_floor"`
	StabilityCeil  float64 `json:"stability_ceil"`
	// InitialStability is the stability of a freshly created state.
	InitialStability float64 `json:"initial_stability"`
	// FormatWeights and ModeWeights are keyed by the wire names of item
	// formats and attempt modes. Unknown keys fall back to 1.0.
	FormatWeights map[string]float64 `json:"format_weights"`
	ModeWeights   map[string]float64 `json:"mode_weights"`
	// DifficultyStep sets the linear spread of the difficulty factor around
	// 1.0 at tier 3: factor(tier) = 1.0 + DifficultyStep*(tier-3).
	DifficultyStep float64 `json:"difficulty_step"`
	// PriorPerLevel maps an onboarding self-assessment level (1-5) to a
	// seeded pMastery prior of PriorPerLevel*level.
	PriorPerLevel float64 `json:"prior_per_level"`
	// Skill-level review spacing: after an attempt the next review falls in
	// round(1 + ReviewScaleDays*stability*pMastery) days, capped at ReviewMaxDays.
	ReviewScaleDays float64 `json:"review_scale_days"`
	ReviewMaxDays   int     `json:"review_max_days"`
}

// GateParams tunes the exam-readiness verification conditions.
type GateParams struct {
	MasteryThreshold      float64 `json:"mastery_threshold"`
	StabilityThreshold    float64 `json:"stability_threshold"`
	RequiredTimedPasses   int     `json:"required_timed_passes"`
	MinHoursBetweenPasses float64 `json:"min_hours_between_passes"`
	// TopErrorTags is the size of the historical error-tag signature a
	// qualifying pass must stay clear of.
	TopErrorTags int `json:"top_error_tags"`
}

// DebtParams tunes the coverage-debt calculation.
type DebtParams struct {
	// NeverPracticedDays is the staleness assumed for skills with no
	// recorded practice at all.
	NeverPracticedDays float64 `json:"never_practiced_days"`
}

// PlannerParams tunes candidate scoring and packing for the daily plan.
type PlannerParams struct {
	LearningGainWeight  float64 `json:"learning_gain_weight"`
	RetentionGainWeight float64 `json:"retention_gain_weight"`
	ExamROIWeight       float64 `json:"exam_roi_weight"`
	ErrorClosureWeight  float64 `json:"error_closure_weight"`
	// RetentionBase is the retention-gain value of a skill that became due
	// today; the remaining headroom fills linearly over OverdueSaturationDays.
	RetentionBase         float64 `json:"retention_base"`
	OverdueSaturationDays float64 `json:"overdue_saturation_days"`
	// Phase adjustments, added to the composite score.
	CriticalModeBoost      float64 `json:"critical_mode_boost"`
	CriticalWeightBoost    float64 `json:"critical_weight_boost"`
	DistantFoundationBoost float64 `json:"distant_foundation_boost"`
	// MaxTasksPerSkill caps how many tasks a single skill contributes to one
	// plan; items are never assigned twice in the same plan.
	MaxTasksPerSkill int `json:"max_tasks_per_skill"`
}

// SRSParams tunes the SM-2 review scheduler.
type SRSParams struct {
	InitialEase float64 `json:"initial_ease"`
	MinEase     float64 `json:"min_ease"`
	// CorrectThreshold is the lowest quality rating counted as correct.
	CorrectThreshold int `json:"correct_threshold"`
	FirstInterval    int `json:"first_interval"`
	SecondInterval   int `json:"second_interval"`
	MaxIntervalDays  int `json:"max_interval_days"`
}

// PhaseParams sets the day boundaries of the exam phases.
type PhaseParams struct {
	DistantMinDays  int `json:"distant_min_days"`
	CriticalMaxDays int `json:"critical_max_days"`
}

// Default returns the canonical tuning used in production.
func Default() Config {
	return Config{
		Mastery: MasteryParams{
			LearningRate:     0.15,
			DeltaFloor:       -0.12,
			DeltaCeil:        0.10,
			PassThreshold:    0.6,
			StabilityGain:    0.1,
			StabilityLoss:    0.15,
			StabilityFloor:   0.3,
			StabilityCeil:    2.0,
			InitialStability: 1.0,
			FormatWeights: map[string]float64{
				"mcq":      0.75,
				"written":  1.15,
				"drafting": 1.25,
				"oral":     1.35,
			},
			ModeWeights: map[string]float64{
				"practice": 1.0,
				"timed":    1.25,
				"exam_sim": 1.25,
			},
			DifficultyStep:  0.2,
			PriorPerLevel:   0.10,
			ReviewScaleDays: 4,
			ReviewMaxDays:   30,
		},
		Gate: GateParams{
			MasteryThreshold:      0.85,
			StabilityThreshold:    1.0,
			RequiredTimedPasses:   2,
			MinHoursBetweenPasses: 24,
			TopErrorTags:          3,
		},
		Debt: DebtParams{
			NeverPracticedDays: 30,
		},
		Planner: PlannerParams{
			LearningGainWeight:     0.25,
			RetentionGainWeight:    0.25,
			ExamROIWeight:          0.25,
			ErrorClosureWeight:     0.25,
			RetentionBase:          0.5,
			OverdueSaturationDays:  14,
			CriticalModeBoost:      0.15,
			CriticalWeightBoost:    0.10,
			DistantFoundationBoost: 0.10,
			MaxTasksPerSkill:       2,
		},
		SRS: SRSParams{
			InitialEase:      2.5,
			MinEase:          1.3,
			CorrectThreshold: 3,
			FirstInterval:    1,
			SecondInterval:   6,
			MaxIntervalDays:  365,
		},
		Phase: PhaseParams{
			DistantMinDays:  60,
			CriticalMaxDays: 7,
		},
	}
}

// Validate checks internal consistency of the tuning values.
func (c Config) Validate() error {
	m := c.Mastery
	if m.LearningRate <= 0 {
		return fmt.Errorf("tuning: learning rate %v must be positive", m.LearningRate)
	}
	if m.DeltaFloor >= 0 || m.DeltaCeil <= 0 {
		return fmt.Errorf("tuning: delta clamp [%v, %v] must straddle zero", m.DeltaFloor, m.DeltaCeil)
	}
	if m.PassThreshold <= 0 || m.PassThreshold >= 1 {
		return fmt.Errorf("tuning: pass threshold %v out of (0, 1)", m.PassThreshold)
	}
	if m.StabilityFloor <= 0 || m.StabilityCeil <= m.StabilityFloor {
		return fmt.Errorf("tuning: stability range [%v, %v] invalid", m.StabilityFloor, m.StabilityCeil)
	}
	if m.InitialStability < m.StabilityFloor || m.InitialStability > m.StabilityCeil {
		return fmt.Errorf("tuning: initial stability %v outside [%v, %v]", m.InitialStability, m.StabilityFloor, m.StabilityCeil)
	}
	if m.ReviewScaleDays < 0 {
		return fmt.Errorf("tuning: review scale days %v must not be negative", m.ReviewScaleDays)
	}
	if m.ReviewMaxDays < 1 {
		return fmt.Errorf("tuning: review max days %d must be at least 1", m.ReviewMaxDays)
	}

	g := c.Gate
	if g.MasteryThreshold <= 0 || g.MasteryThreshold > 1 {
		return fmt.Errorf("tuning: gate mastery threshold %v out of (0, 1]", g.MasteryThreshold)
	}
	if g.RequiredTimedPasses < 1 {
		return fmt.Errorf("tuning: required timed passes %d must be at least 1", g.RequiredTimedPasses)
	}
	if g.MinHoursBetweenPasses < 0 {
		return fmt.Errorf("tuning: min hours between passes %v must not be negative", g.MinHoursBetweenPasses)
	}
	if g.TopErrorTags < 0 {
		return fmt.Errorf("tuning: top error tags %d must not be negative", g.TopErrorTags)
	}

	p := c.Planner
	weightSum := p.LearningGainWeight + p.RetentionGainWeight + p.ExamROIWeight + p.ErrorClosureWeight
	if weightSum <= 0 {
		return fmt.Errorf("tuning: planner factor weights sum to %v, need > 0", weightSum)
	}
	if p.MaxTasksPerSkill < 1 {
		return fmt.Errorf("tuning: max tasks per skill %d must be at least 1", p.MaxTasksPerSkill)
	}
	if p.OverdueSaturationDays <= 0 {
		return fmt.Errorf("tuning: overdue saturation days %v must be positive", p.OverdueSaturationDays)
	}

	s := c.SRS
	if s.MinEase <= 0 || s.InitialEase < s.MinEase {
		return fmt.Errorf("tuning: ease range (initial %v, min %v) invalid", s.InitialEase, s.MinEase)
	}
	if s.FirstInterval < 1 || s.SecondInterval < s.FirstInterval {
		return fmt.Errorf("tuning: srs intervals (%d, %d) invalid", s.FirstInterval, s.SecondInterval)
	}
	if s.MaxIntervalDays < s.SecondInterval {
		return fmt.Errorf("tuning: max interval %d below second interval %d", s.MaxIntervalDays, s.SecondInterval)
	}

	ph := c.Phase
	if ph.CriticalMaxDays < 0 || ph.DistantMinDays <= ph.CriticalMaxDays {
		return fmt.Errorf("tuning: phase boundaries (distant >=%d, critical <=%d) invalid", ph.DistantMinDays, ph.CriticalMaxDays)
	}

	if c.Debt.NeverPracticedDays < 0 {
		return fmt.Errorf("tuning: never-practiced days %v must not be negative", c.Debt.NeverPracticedDays)
	}
	return nil
}

// Load returns the default config overlaid with the JSON override file at
// path, if path is non-empty. The file is schema-validated before use.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read tuning file: %w", err)
	}
	if err := validateOverride(raw); err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
