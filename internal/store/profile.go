package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// ExamProfileRepo persists exam dates and study settings per user.
type ExamProfileRepo interface {
	// Get returns the user's profile, or ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*ExamProfile, error)

	// Upsert inserts or replaces the profile.
	Upsert(ctx context.Context, row *ExamProfile) error

	// ListUserIDs returns every user with a profile, ID ascending. Drives
	// the plan precompute fan-out.
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type examProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamProfileRepo(db *gorm.DB, log *logger.Logger) ExamProfileRepo {
	return &examProfileRepo{db: db, log: log.With("repo", "exam_profile")}
}

func (r *examProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*ExamProfile, error) {
	var row ExamProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *examProfileRepo) Upsert(ctx context.Context, row *ExamProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func (r *examProfileRepo) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ExamProfile{}).
		Order("user_id asc").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
