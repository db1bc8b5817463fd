package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// AttemptRepo persists graded submissions and their per-skill fan-out.
type AttemptRepo interface {
	// Insert writes the attempt and its skill rows in one transaction.
	Insert(ctx context.Context, att *Attempt, skills []AttemptSkill) error

	// ListByUser returns the user's attempts newest first, at most limit
	// (0 = no limit).
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Attempt, error)

	// SkillHistory returns one skill's attempt rows oldest first.
	SkillHistory(ctx context.Context, userID uuid.UUID, skillID string) ([]AttemptSkill, error)
}

type attemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttemptRepo(db *gorm.DB, log *logger.Logger) AttemptRepo {
	return &attemptRepo{db: db, log: log.With("repo", "attempt")}
}

func (r *attemptRepo) Insert(ctx context.Context, att *Attempt, skills []AttemptSkill) error {
	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	for i := range skills {
		if skills[i].ID == uuid.Nil {
			skills[i].ID = uuid.New()
		}
		skills[i].AttemptID = att.ID
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(att).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}

func (r *attemptRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Attempt, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Attempt
	err := q.Find(&rows).Error
	return rows, err
}

func (r *attemptRepo) SkillHistory(ctx context.Context, userID uuid.UUID, skillID string) ([]AttemptSkill, error) {
	var rows []AttemptSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Order("occurred_at asc").
		Find(&rows).Error
	return rows, err
}
