package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Count cache keys, per owner:
//   count:videos:{owner}      - JSON entry with the per-title counters
//   count:videos:ver:{owner}  - version counter bumped by every writer
const (
	countCacheKeyTemplate   = "count:videos:%s"
	countVersionKeyTemplate = "count:videos:ver:%s"
)

const defaultCountTTL = 24 * time.Hour

type CountCache struct {
	LikeCount    int64 `json:"like_count"`
	DislikeCount int64 `json:"dislike_count"`
}

// countsEntry is the stored payload. The embedded version is the value
// of the version key at the time the reader started computing; an entry
// whose version no longer matches the key was computed before some
// mutation committed and is never served.
type countsEntry struct {
	Version   int64                 `json:"version"`
	Timestamp int64                 `json:"timestamp"`
	Counts    map[string]CountCache `json:"counts"`
}

// ReactionCountCache is a read-through cache in front of the reaction
// aggregate queries, keyed per owner. Writers bump the owner's version
// instead of trusting deletes alone, so a slow reader that computed
// counts before a mutation cannot re-install them as fresh: its Set
// carries the old version and the next Get treats the entry as a miss.
// A nil cache is a valid no-op so engines run without redis.
type ReactionCountCache struct {
	client     redis.Cmdable
	defaultTTL time.Duration
}

func NewReactionCountCache(client redis.Cmdable) *ReactionCountCache {
	return &ReactionCountCache{
		client:     client,
		defaultTTL: defaultCountTTL,
	}
}

func countKey(ownerEmail string) string {
	return fmt.Sprintf(countCacheKeyTemplate, ownerEmail)
}

func countVersionKey(ownerEmail string) string {
	return fmt.Sprintf(countVersionKeyTemplate, ownerEmail)
}

// Get returns the owner's cached per-title counts and the current
// version, or a nil map on a miss. The version must be passed back to
// Set unchanged after the counts were recomputed.
func (c *ReactionCountCache) Get(ctx context.Context, ownerEmail string) (map[string]CountCache, int64, error) {
	if c == nil || c.client == nil {
		return nil, 0, nil
	}
	version, err := c.version(ctx, ownerEmail)
	if err != nil {
		return nil, 0, err
	}
	val, err := c.client.Get(ctx, countKey(ownerEmail)).Result()
	if err == redis.Nil {
		return nil, version, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get count cache: %w", err)
	}
	var entry countsEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal count cache: %w", err)
	}
	if entry.Version != version {
		// stale entry from a reader that raced a mutation
		return nil, version, nil
	}
	return entry.Counts, version, nil
}

// Set stores the counts stamped with the version read before they were
// computed. A writer that committed in between has already bumped the
// version key, which turns this entry into a dead write.
func (c *ReactionCountCache) Set(ctx context.Context, ownerEmail string, counts map[string]CountCache, version int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	b, err := json.Marshal(countsEntry{
		Version:   version,
		Timestamp: time.Now().Unix(),
		Counts:    counts,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal count cache: %w", err)
	}
	return c.client.Set(ctx, countKey(ownerEmail), b, c.defaultTTL).Err()
}

// Invalidate bumps the owner's version and drops the entry. Called after
// every reaction mutation and video delete.
func (c *ReactionCountCache) Invalidate(ctx context.Context, ownerEmail string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Incr(ctx, countVersionKey(ownerEmail)).Err(); err != nil {
		return fmt.Errorf("failed to bump count cache version: %w", err)
	}
	c.client.Expire(ctx, countVersionKey(ownerEmail), c.defaultTTL)
	return c.client.Del(ctx, countKey(ownerEmail)).Err()
}

func (c *ReactionCountCache) version(ctx context.Context, ownerEmail string) (int64, error) {
	val, err := c.client.Get(ctx, countVersionKey(ownerEmail)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get count cache version: %w", err)
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse count cache version: %w", err)
	}
	return version, nil
}
