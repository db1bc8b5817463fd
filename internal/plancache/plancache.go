package plancache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
	"github.com/RunZER0/bar-exam-prep-sub003/internal/planner"
)

// ErrMiss is returned by Get when no plan is cached for the user.
var ErrMiss = errors.New("plancache: miss")

// DefaultTTL bounds how long a cached plan stays valid when no attempt or
// review invalidates it first.
const DefaultTTL = 6 * time.Hour

// PlanCache stores the most recent daily plan per user.
type PlanCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*planner.Plan, error)
	Set(ctx context.Context, userID uuid.UUID, plan *planner.Plan) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedis returns a PlanCache backed by redis with the given TTL. A zero ttl
// falls back to DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, log *logger.Logger) PlanCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log.With("component", "plancache"),
	}
}

func planKey(userID uuid.UUID) string {
	return "plan:" + userID.String()
}

func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*planner.Plan, error) {
	data, err := c.client.Get(ctx, planKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("plancache get: %w", err)
	}
	var plan planner.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		// A stale or corrupt entry is treated as a miss after dropping it.
		c.log.Warn("drop unreadable cached plan", "user_id", userID, "err", err)
		_ = c.client.Del(ctx, planKey(userID)).Err()
		return nil, ErrMiss
	}
	return &plan, nil
}

func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, plan *planner.Plan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("plancache marshal: %w", err)
	}
	if err := c.client.Set(ctx, planKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("plancache set: %w", err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, planKey(userID)).Err(); err != nil {
		return fmt.Errorf("plancache invalidate: %w", err)
	}
	return nil
}

type nopCache struct{}

// NewNop returns a PlanCache that caches nothing. Every Get is a miss.
func NewNop() PlanCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, uuid.UUID) (*planner.Plan, error) { return nil, ErrMiss }

func (nopCache) Set(context.Context, uuid.UUID, *planner.Plan) error { return nil }

func (nopCache) Invalidate(context.Context, uuid.UUID) error { return nil }
