package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// ItemRepo reads the practice item catalog.
type ItemRepo interface {
	// Get returns one item by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Item, error)

	// ListActive returns every active item, ID ascending.
	ListActive(ctx context.Context) ([]Item, error)

	// Upsert inserts or replaces a catalog item. Used by seeding and
	// catalog sync.
	Upsert(ctx context.Context, row *Item) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, log *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: log.With("repo", "item")}
}

func (r *itemRepo) Get(ctx context.Context, id string) (*Item, error) {
	var row Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *itemRepo) ListActive(ctx context.Context) ([]Item, error) {
	var rows []Item
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id asc").
		Find(&rows).Error
	return rows, err
}

func (r *itemRepo) Upsert(ctx context.Context, row *Item) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}
