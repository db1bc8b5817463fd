package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/config"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/plancache"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/planner"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/skillgraph"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/store"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/tuning"
)

var engineNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

// memCache is an in-memory PlanCache recording writes and invalidations.
type memCache struct {
	mu            sync.Mutex
	plans         map[uuid.UUID]*planner.Plan
	sets          int
	invalidations int
}

func newMemCache() *memCache {
	return &memCache{plans: make(map[uuid.UUID]*planner.Plan)}
}

func (c *memCache) Get(_ context.Context, userID uuid.UUID) (*planner.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.plans[userID]; ok {
		return p, nil
	}
	return nil, plancache.ErrMiss
}

func (c *memCache) Set(_ context.Context, userID uuid.UUID, plan *planner.Plan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[userID] = plan
	c.sets++
	return nil
}

func (c *memCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.plans, userID)
	c.invalidations++
	return nil
}

func (c *memCache) cached(userID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.plans[userID]
	return ok
}

// recNotifier records published events for assertions.
type recNotifier struct {
	mu        sync.Mutex
	planReady []int
	cardsDue  []int
	verified  []string
}

func (n *recNotifier) PlanReady(_ context.Context, _ uuid.UUID, tasks int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.planReady = append(n.planReady, tasks)
}

func (n *recNotifier) CardsDue(_ context.Context, _ uuid.UUID, due int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cardsDue = append(n.cardsDue, due)
}

func (n *recNotifier) SkillVerified(_ context.Context, _ uuid.UUID, skillID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verified = append(n.verified, skillID)
}

func testSkills() []skillgraph.Skill {
	return []skillgraph.Skill{
		{
			ID: "con-basics", Name: "Constitutional Basics",
			Unit: skillgraph.UnitPublicLaw, ExamWeight: 0.6, DifficultyTier: 1,
			Formats: []skillgraph.Format{skillgraph.FormatMCQ, skillgraph.FormatWritten},
			Core:    true,
		},
		{
			ID: "con-rights", Name: "Fundamental Rights",
			Unit: skillgraph.UnitPublicLaw, ExamWeight: 0.8, DifficultyTier: 3,
			Formats:       []skillgraph.Format{skillgraph.FormatWritten, skillgraph.FormatOral},
			Prerequisites: []string{"con-basics"},
		},
		{
			ID: "civ-contracts", Name: "Contract Formation",
			Unit: skillgraph.UnitContractLaw, ExamWeight: 0.9, DifficultyTier: 2,
			Formats: []skillgraph.Format{skillgraph.FormatWritten, skillgraph.FormatMCQ, skillgraph.FormatDrafting},
			Core:    true,
		},
		{
			ID: "civ-remedies", Name: "Contract Remedies",
			Unit: skillgraph.UnitContractLaw, ExamWeight: 0.5, DifficultyTier: 3,
			Formats:       []skillgraph.Format{skillgraph.FormatWritten},
			Prerequisites: []string{"civ-contracts"},
		},
	}
}

type testEnv struct {
	svc      *Service
	repos    *store.Repos
	cache    *memCache
	notifier *recNotifier
}

func newTestService(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file::memory:?cache=shared",
	}
	st, err := store.Open(cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	graph, err := skillgraph.NewGraph(testSkills())
	require.NoError(t, err)

	env := &testEnv{
		repos:    store.NewRepos(st.DB(), logger.NewNop()),
		cache:    newMemCache(),
		notifier: &recNotifier{},
	}
	env.svc = New(env.repos, graph, tuning.Default(), env.cache, env.notifier, 2, logger.NewNop())
	env.svc.now = func() time.Time { return engineNow }
	return env
}

// seedItem puts a practice item into the catalog.
func seedItem(t *testing.T, env *testEnv, id string, weights map[string]float64, format string, difficulty, minutes int, tags ...string) {
	t.Helper()
	err := env.repos.Items.Upsert(context.Background(), &store.Item{
		ID:               id,
		Title:            "Item " + id,
		Format:           format,
		Difficulty:       difficulty,
		EstimatedMinutes: minutes,
		SkillWeights:     store.JSON(weights),
		ErrorTags:        store.JSON(tags),
		Active:           true,
	})
	require.NoError(t, err)
}
