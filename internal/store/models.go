package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MasteryState is the persisted mastery record for one (user, skill).
// pMastery and stability are written only through the mastery update path;
// Version guards against concurrent read-modify-write cycles.
type MasteryState struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_mastery_user_skill,unique,priority:1" json:"user_id"`
	SkillID         string     `gorm:"not null;index:idx_mastery_user_skill,unique,priority:2" json:"skill_id"`
	PMastery        float64    `gorm:"not null;default:0" json:"p_mastery"`
	Stability       float64    `gorm:"not null;default:1" json:"stability"`
	AttemptCount    int        `gorm:"not null;default:0" json:"attempt_count"`
	CorrectCount    int        `gorm:"not null;default:0" json:"correct_count"`
	LastPracticedAt *time.Time `gorm:"index" json:"last_practiced_at,omitempty"`
	NextReviewDate  *time.Time `gorm:"index" json:"next_review_date,omitempty"`
	Gate            string     `gorm:"not null;default:STUDYING" json:"gate"`
	GatePassedAt    *time.Time `json:"gate_passed_at,omitempty"`
	Version         int64      `gorm:"not null;default:0" json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (MasteryState) TableName() string { return "mastery_state" }

// Attempt is the immutable record of one graded submission. Never updated.
type Attempt struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_time,priority:1" json:"user_id"`
	ItemID       string         `gorm:"not null" json:"item_id"`
	Format       string         `gorm:"not null" json:"format"`
	Mode         string         `gorm:"not null" json:"mode"`
	Difficulty   int            `gorm:"not null;default:3" json:"difficulty"`
	ScoreNorm    float64        `gorm:"not null" json:"score_norm"`
	ErrorTags    datatypes.JSON `json:"error_tags,omitempty"`
	SkillWeights datatypes.JSON `json:"skill_weights"`
	OccurredAt   time.Time      `gorm:"not null;index:idx_attempt_user_time,priority:2" json:"occurred_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (Attempt) TableName() string { return "attempt" }

// AttemptSkill is an attempt fanned out to a single skill, one row per
// (skill, weight) mapping, so skill histories can be queried without
// unpacking the attempt's JSON columns.
type AttemptSkill struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"attempt_id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_skill_user,priority:1" json:"user_id"`
	SkillID    string         `gorm:"not null;index:idx_attempt_skill_user,priority:2" json:"skill_id"`
	Weight     float64        `gorm:"not null" json:"weight"`
	ScoreNorm  float64        `gorm:"not null" json:"score_norm"`
	Format     string         `gorm:"not null" json:"format"`
	Mode       string         `gorm:"not null" json:"mode"`
	ErrorTags  datatypes.JSON `json:"error_tags,omitempty"`
	OccurredAt time.Time      `gorm:"not null" json:"occurred_at"`
}

func (AttemptSkill) TableName() string { return "attempt_skill" }

// SkillVerification is the immutable audit record written when a skill
// reaches EXAM_READY.
type SkillVerification struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_verification_user,priority:1" json:"user_id"`
	SkillID         string         `gorm:"not null;index:idx_verification_user,priority:2" json:"skill_id"`
	PMastery        float64        `gorm:"not null" json:"p_mastery"`
	FirstAttemptID  string         `gorm:"not null" json:"first_attempt_id"`
	SecondAttemptID string         `gorm:"not null" json:"second_attempt_id"`
	HoursBetween    float64        `gorm:"not null" json:"hours_between"`
	TagsCleared     datatypes.JSON `json:"tags_cleared,omitempty"`
	VerifiedAt      time.Time      `gorm:"not null" json:"verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (SkillVerification) TableName() string { return "skill_verification" }

// Card is the persisted spaced repetition state for one (user, content
// item). Soft-deleted via IsActive, never hard-deleted.
type Card struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_card_user_card,unique,priority:1" json:"user_id"`
	CardID         string     `gorm:"not null;index:idx_card_user_card,unique,priority:2" json:"card_id"`
	EasinessFactor float64    `gorm:"not null;default:2.5" json:"easiness_factor"`
	IntervalDays   int        `gorm:"not null;default:1" json:"interval_days"`
	Repetitions    int        `gorm:"not null;default:0" json:"repetitions"`
	NextReviewDate time.Time  `gorm:"not null;index" json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`
	LastQuality    int        `gorm:"not null;default:0" json:"last_quality"`
	TotalReviews   int        `gorm:"not null;default:0" json:"total_reviews"`
	CorrectReviews int        `gorm:"not null;default:0" json:"correct_reviews"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Card) TableName() string { return "review_card" }

// ReviewLog records one applied card review.
type ReviewLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CardID           string    `gorm:"not null;index" json:"card_id"`
	Quality          int       `gorm:"not null" json:"quality"`
	Correct          bool      `gorm:"not null" json:"correct"`
	PreviousInterval int       `gorm:"not null" json:"previous_interval"`
	NewInterval      int       `gorm:"not null" json:"new_interval"`
	NewEase          float64   `gorm:"not null" json:"new_ease"`
	ReviewedAt       time.Time `gorm:"not null;index" json:"reviewed_at"`
}

func (ReviewLog) TableName() string { return "review_log" }

// Item is a practice item from the content catalog.
type Item struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"not null" json:"title"`
	Format           string         `gorm:"not null" json:"format"`
	Difficulty       int            `gorm:"not null;default:3" json:"difficulty"`
	EstimatedMinutes int            `gorm:"not null" json:"estimated_minutes"`
	SkillWeights     datatypes.JSON `json:"skill_weights"`
	ErrorTags        datatypes.JSON `json:"error_tags,omitempty"`
	Active           bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Item) TableName() string { return "item" }

// ExamProfile holds a user's exam dates and study settings.
type ExamProfile struct {
	UserID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	WrittenExamDate    *time.Time `json:"written_exam_date,omitempty"`
	OralExamDate       *time.Time `json:"oral_exam_date,omitempty"`
	DailyBudgetMinutes int        `gorm:"not null;default:60" json:"daily_budget_minutes"`
	OnboardingDone     bool       `gorm:"not null;default:false" json:"onboarding_done"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (ExamProfile) TableName() string { return "exam_profile" }

// JSON marshals v into a JSON column value.
func JSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

// Strings decodes a JSON array column into a string slice.
func Strings(j datatypes.JSON) []string {
	if len(j) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}

// Weights decodes a JSON object column into a skill-weight map.
func Weights(j datatypes.JSON) map[string]float64 {
	if len(j) == 0 {
		return nil
	}
	out := make(map[string]float64)
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}
