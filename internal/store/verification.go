package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// SkillVerificationRepo persists gate audit records.
type SkillVerificationRepo interface {
	Insert(ctx context.Context, row *SkillVerification) error

	// GetBySkill returns the verification for one (user, skill), or
	// ErrNotFound. The gate writes at most one per skill.
	GetBySkill(ctx context.Context, userID uuid.UUID, skillID string) (*SkillVerification, error)

	// ListByUser returns the user's verifications newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SkillVerification, error)
}

type skillVerificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillVerificationRepo(db *gorm.DB, log *logger.Logger) SkillVerificationRepo {
	return &skillVerificationRepo{db: db, log: log.With("repo", "skill_verification")}
}

func (r *skillVerificationRepo) Insert(ctx context.Context, row *SkillVerification) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *skillVerificationRepo) GetBySkill(ctx context.Context, userID uuid.UUID, skillID string) (*SkillVerification, error) {
	var row SkillVerification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Order("verified_at desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *skillVerificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]SkillVerification, error) {
	var rows []SkillVerification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("verified_at desc").
		Find(&rows).Error
	return rows, err
}
