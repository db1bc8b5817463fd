package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// CardRepo persists spaced repetition cards.
type CardRepo interface {
	// Get returns the card for one (user, card), or ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID, cardID string) (*Card, error)

	// ListActive returns the user's active cards, card ID ascending.
	ListActive(ctx context.Context, userID uuid.UUID) ([]Card, error)

	// Create inserts a new card; a duplicate (user, card) pair surfaces as
	// ErrConflict.
	Create(ctx context.Context, row *Card) error

	// Update writes the card back by primary key. Concurrent reviews of
	// the same card must be serialized by the caller.
	Update(ctx context.Context, row *Card) error

	// Deactivate soft-deletes a card. Idempotent.
	Deactivate(ctx context.Context, userID uuid.UUID, cardID string) error
}

type cardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCardRepo(db *gorm.DB, log *logger.Logger) CardRepo {
	return &cardRepo{db: db, log: log.With("repo", "card")}
}

func (r *cardRepo) Get(ctx context.Context, userID uuid.UUID, cardID string) (*Card, error) {
	var row Card
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cardRepo) ListActive(ctx context.Context, userID uuid.UUID) ([]Card, error) {
	var rows []Card
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("card_id asc").
		Find(&rows).Error
	return rows, err
}

func (r *cardRepo) Create(ctx context.Context, row *Card) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (r *cardRepo) Update(ctx context.Context, row *Card) error {
	return r.db.WithContext(ctx).
		Model(&Card{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"easiness_factor":  row.EasinessFactor,
			"interval_days":    row.IntervalDays,
			"repetitions":      row.Repetitions,
			"next_review_date": row.NextReviewDate,
			"last_review_date": row.LastReviewDate,
			"last_quality":     row.LastQuality,
			"total_reviews":    row.TotalReviews,
			"correct_reviews":  row.CorrectReviews,
			"is_active":        row.IsActive,
		}).Error
}

func (r *cardRepo) Deactivate(ctx context.Context, userID uuid.UUID, cardID string) error {
	return r.db.WithContext(ctx).
		Model(&Card{}).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Update("is_active", false).Error
}
