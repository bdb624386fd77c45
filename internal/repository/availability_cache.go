package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hjalloh/campsite/internal/domain"
)

const cacheVersionKey = "availability:ver"

// AvailabilityCache keeps computed free-interval snapshots in Redis.
// Availability reads are advisory (bookings are the source of truth), so a
// snapshot may lag behind a concurrent booking by up to the TTL. Every write
// to the bookings collection bumps a version counter, which shifts the key
// space and orphans all stale snapshots at once.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewAvailabilityCache wraps the given Redis client. A nil client yields a
// cache that always misses, which keeps the availability path working when
// Redis is not deployed.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// Get returns a cached snapshot for the window, if present.
func (c *AvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]domain.FreeInterval, bool) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	key, err := c.snapshotKey(ctx, start, end)
	if err != nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var cached []cachedInterval
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false
	}
	intervals := make([]domain.FreeInterval, 0, len(cached))
	for _, entry := range cached {
		s, err := domain.ParseDate(entry.Start)
		if err != nil {
			return nil, false
		}
		e, err := domain.ParseDate(entry.End)
		if err != nil {
			return nil, false
		}
		intervals = append(intervals, domain.FreeInterval{Start: s, End: e})
	}
	return intervals, true
}

// Set stores a snapshot for the window under the current cache version.
func (c *AvailabilityCache) Set(ctx context.Context, start, end time.Time, intervals []domain.FreeInterval) {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return
	}
	key, err := c.snapshotKey(ctx, start, end)
	if err != nil {
		return
	}
	cached := make([]cachedInterval, 0, len(intervals))
	for _, interval := range intervals {
		cached = append(cached, cachedInterval{
			Start: domain.FormatDate(interval.Start),
			End:   domain.FormatDate(interval.End),
		})
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate bumps the version counter, retiring every stored snapshot.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, cacheVersionKey).Err()
}

func (c *AvailabilityCache) snapshotKey(ctx context.Context, start, end time.Time) (string, error) {
	version, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("availability:%d:%s:%s", version, domain.FormatDate(start), domain.FormatDate(end)), nil
}
