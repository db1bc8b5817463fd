package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// ReviewLogRepo persists card review history.
type ReviewLogRepo interface {
	Insert(ctx context.Context, row *ReviewLog) error

	// ListByCard returns one card's reviews newest first, at most limit
	// (0 = no limit).
	ListByCard(ctx context.Context, userID uuid.UUID, cardID string, limit int) ([]ReviewLog, error)
}

type reviewLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewLogRepo(db *gorm.DB, log *logger.Logger) ReviewLogRepo {
	return &reviewLogRepo{db: db, log: log.With("repo", "review_log")}
}

func (r *reviewLogRepo) Insert(ctx context.Context, row *ReviewLog) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *reviewLogRepo) ListByCard(ctx context.Context, userID uuid.UUID, cardID string, limit int) ([]ReviewLog, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Order("reviewed_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []ReviewLog
	err := q.Find(&rows).Error
	return rows, err
}
