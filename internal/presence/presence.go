package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	onlineKeyPrefix   = "presence:online:"
	lastSeenKeyPrefix = "presence:last_seen:"
	defaultTTL        = 2 * time.Minute
)

// Info is the presence snapshot for one user.
type Info struct {
	Online   bool
	LastSeen *time.Time
}

// Tracker records user activity in Redis with a sliding TTL. A nil client
// disables tracking; every method degrades to a no-op.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTracker builds a tracker over the given client.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client, ttl: defaultTTL}
}

// Touch marks the user online and refreshes last-seen.
func (t *Tracker) Touch(ctx context.Context, userID string) {
	if t == nil || t.client == nil || userID == "" {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	pipe := t.client.Pipeline()
	pipe.Set(ctx, onlineKeyPrefix+userID, "1", t.ttl)
	pipe.Set(ctx, lastSeenKeyPrefix+userID, now, 0)
	_, _ = pipe.Exec(ctx)
}

// Lookup returns presence for one user; zero Info on any error.
func (t *Tracker) Lookup(ctx context.Context, userID string) Info {
	if t == nil || t.client == nil {
		return Info{}
	}
	info := Info{}
	if exists, err := t.client.Exists(ctx, onlineKeyPrefix+userID).Result(); err == nil && exists > 0 {
		info.Online = true
	}
	if raw, err := t.client.Get(ctx, lastSeenKeyPrefix+userID).Result(); err == nil {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			info.LastSeen = &parsed
		}
	}
	return info
}
