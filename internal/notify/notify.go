package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/RunZER0/bar-exam-prep-sub003/internal/logger"
)

// Event types published on the engine channel.
const (
	EventPlanReady     = "plan.ready"
	EventCardsDue      = "cards.due"
	EventSkillVerified = "skill.verified"
)

// Event is the wire shape of one published notification.
type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Count  int       `json:"count,omitempty"`
	Skill  string    `json:"skill,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier tells downstream consumers about engine events. All methods are
// fire-and-forget: failures are logged, never returned, and no response is
// consumed.
type Notifier interface {
	PlanReady(ctx context.Context, userID uuid.UUID, tasks int)
	CardsDue(ctx context.Context, userID uuid.UUID, due int)
	SkillVerified(ctx context.Context, userID uuid.UUID, skillID string)
}

type redisNotifier struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

// NewRedis returns a Notifier publishing JSON events on a redis channel.
func NewRedis(client *redis.Client, channel string, log *logger.Logger) Notifier {
	return &redisNotifier{
		client:  client,
		channel: channel,
		log:     log.With("component", "notify"),
	}
}

func (n *redisNotifier) PlanReady(ctx context.Context, userID uuid.UUID, tasks int) {
	n.publish(ctx, Event{Type: EventPlanReady, UserID: userID.String(), Count: tasks})
}

func (n *redisNotifier) CardsDue(ctx context.Context, userID uuid.UUID, due int) {
	n.publish(ctx, Event{Type: EventCardsDue, UserID: userID.String(), Count: due})
}

func (n *redisNotifier) SkillVerified(ctx context.Context, userID uuid.UUID, skillID string) {
	n.publish(ctx, Event{Type: EventSkillVerified, UserID: userID.String(), Skill: skillID})
}

func (n *redisNotifier) publish(ctx context.Context, ev Event) {
	ev.At = time.Now().UTC()
	data, err := json.Marshal(ev)
	if err != nil {
		n.log.Error("marshal event", "type", ev.Type, "err", err)
		return
	}
	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		n.log.Warn("publish event", "type", ev.Type, "err", err)
	}
}

type nopNotifier struct{}

// NewNop returns a Notifier that drops every event. Used when no redis is
// configured, and in tests.
func NewNop() Notifier {
	return nopNotifier{}
}

func (nopNotifier) PlanReady(context.Context, uuid.UUID, int) {}

func (nopNotifier) CardsDue(context.Context, uuid.UUID, int) {}

func (nopNotifier) SkillVerified(context.Context, uuid.UUID, string) {}
