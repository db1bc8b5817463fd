package store

import (
	"gorm.io/gorm"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// Repos bundles every repository over one database handle.
type Repos struct {
	MasteryStates MasteryStateRepo
	Attempts      AttemptRepo
	Verifications SkillVerificationRepo
	Cards         CardRepo
	ReviewLogs    ReviewLogRepo
	Items         ItemRepo
	Profiles      ExamProfileRepo
}

func NewRepos(db *gorm.DB, log *logger.Logger) *Repos {
	return &Repos{
		MasteryStates: NewMasteryStateRepo(db, log),
		Attempts:      NewAttemptRepo(db, log),
		Verifications: NewSkillVerificationRepo(db, log),
		Cards:         NewCardRepo(db, log),
		ReviewLogs:    NewReviewLogRepo(db, log),
		Items:         NewItemRepo(db, log),
		Profiles:      NewExamProfileRepo(db, log),
	}
}
