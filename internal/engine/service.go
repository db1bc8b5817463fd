package engine

import (
	"errors"
	"time"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/notify"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/plancache"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

// ErrValidation marks a request the engine refuses to process. The HTTP
// layer maps it to a 400 response.
var ErrValidation = errors.New("engine: invalid input")

// defaultDailyBudgetMinutes is the study budget assumed for users without a
// profile.
const defaultDailyBudgetMinutes = 60

// Service sequences persisted state through the pure engine packages:
// it loads rows, runs the mastery, gate, coverage, planner and spaced
// repetition computations, and writes the results back. All of the actual
// math lives in those packages; the service never reimplements any of it.
type Service struct {
	repos       *store.Repos
	graph       *skillgraph.Graph
	cfg         tuning.Config
	cache       plancache.PlanCache
	notifier    notify.Notifier
	planWorkers int
	log         *logger.Logger
	now         func() time.Time
}

// New wires the orchestration service. workers bounds plan precomputation
// parallelism; non-positive values fall back to 1.
func New(repos *store.Repos, graph *skillgraph.Graph, cfg tuning.Config, cache plancache.PlanCache, notifier notify.Notifier, workers int, log *logger.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		repos:       repos,
		graph:       graph,
		cfg:         cfg,
		cache:       cache,
		notifier:    notifier,
		planWorkers: workers,
		log:         log.With("service", "engine"),
		now:         time.Now,
	}
}
