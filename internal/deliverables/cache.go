package deliverables

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aiig/deliverables-backend/internal/domain"
)

// upcomingKey is a redis hash keyed by window length in days.
const upcomingKey = "deliverables:upcoming"

// Cache is a best-effort read-through cache for the upcoming view, the
// hottest dashboard query. Every deliverable mutation invalidates it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetUpcoming returns the cached window, or false on a miss. Redis errors
// count as misses.
func (c *Cache) GetUpcoming(ctx context.Context, days int) ([]domain.Deliverable, bool) {
	data, err := c.client.HGet(ctx, upcomingKey, strconv.Itoa(days)).Result()
	if err != nil {
		return nil, false
	}

	var items []domain.Deliverable
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Cache) SetUpcoming(ctx context.Context, days int, items []domain.Deliverable) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, upcomingKey, strconv.Itoa(days), data)
	pipe.Expire(ctx, upcomingKey, c.ttl)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops every cached window.
func (c *Cache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, upcomingKey).Err()
}
