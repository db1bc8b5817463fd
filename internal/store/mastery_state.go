package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// MasteryStateRepo persists per-skill mastery records.
type MasteryStateRepo interface {
	// Get returns the record for one (user, skill), or ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID, skillID string) (*MasteryState, error)

	// ListByUser returns every record for the user, skill ID ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]MasteryState, error)

	// Create inserts a fresh record. A concurrent first write to the same
	// (user, skill) surfaces as ErrConflict.
	Create(ctx context.Context, row *MasteryState) error

	// Update writes the row back guarded by its version: the stored row
	// must still carry row.Version or ErrConflict is returned. On success
	// row.Version is advanced.
	Update(ctx context.Context, row *MasteryState) error
}

type masteryStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryStateRepo(db *gorm.DB, log *logger.Logger) MasteryStateRepo {
	return &masteryStateRepo{db: db, log: log.With("repo", "mastery_state")}
}

func (r *masteryStateRepo) Get(ctx context.Context, userID uuid.UUID, skillID string) (*MasteryState, error) {
	var row MasteryState
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *masteryStateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]MasteryState, error) {
	var rows []MasteryState
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("skill_id asc").
		Find(&rows).Error
	return rows, err
}

func (r *masteryStateRepo) Create(ctx context.Context, row *MasteryState) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *masteryStateRepo) Update(ctx context.Context, row *MasteryState) error {
	res := r.db.WithContext(ctx).Model(&MasteryState{}).
		Where("id = ? AND version = ?", row.ID, row.Version).
		Updates(map[string]any{
			"p_mastery":         row.PMastery,
			"stability":         row.Stability,
			"attempt_count":     row.AttemptCount,
			"correct_count":     row.CorrectCount,
			"last_practiced_at": row.LastPracticedAt,
			"next_review_date":  row.NextReviewDate,
			"gate":              row.Gate,
			"gate_passed_at":    row.GatePassedAt,
			"version":           row.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Warn("versioned update lost a race", "skill", row.SkillID, "version", row.Version)
		return ErrConflict
	}
	row.Version++
	return nil
}
