package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/config"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// Store owns the database handle. Repositories are built over it with
// NewRepos.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the configured database (postgres in deployment, sqlite
// for local work and tests) and runs auto-migration.
func Open(cfg *config.Config, log *logger.Logger) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, log: log.With("component", "store")}, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MasteryState{},
		&Attempt{},
		&AttemptSkill{},
		&SkillVerification{},
		&Card{},
		&ReviewLog{},
		&Item{},
		&ExamProfile{},
	)
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
