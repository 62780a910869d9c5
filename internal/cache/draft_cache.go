// Package cache keeps respondents' in-progress answers between page loads.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"wellbeing/internal/model"

	"github.com/redis/go-redis/v9"
)

// DefaultDraftTTL is how long an untouched draft survives
const DefaultDraftTTL = 24 * time.Hour

// DraftCache stores one draft per respondent session
type DraftCache interface {
	Set(ctx context.Context, draft *model.Draft) error
	Get(ctx context.Context, sessionID string) (*model.Draft, error)
	Delete(ctx context.Context, sessionID string) error
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a Redis-backed draft cache
func NewDraftCache(client *redis.Client, ttl time.Duration) DraftCache {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &draftCache{client: client, ttl: ttl}
}

func (c *draftCache) Set(ctx context.Context, draft *model.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, draftKey(draft.SessionID), data, c.ttl).Err()
}

func (c *draftCache) Get(ctx context.Context, sessionID string) (*model.Draft, error) {
	data, err := c.client.Get(ctx, draftKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *draftCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, draftKey(sessionID)).Err()
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryDraftCache is the single-process fallback used when no Redis is configured
type MemoryDraftCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryDraftCache creates an in-process draft cache
func NewMemoryDraftCache(ttl time.Duration) *MemoryDraftCache {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &MemoryDraftCache{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (c *MemoryDraftCache) Set(_ context.Context, draft *model.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[draftKey(draft.SessionID)] = memoryEntry{data: data, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryDraftCache) Get(_ context.Context, sessionID string) (*model.Draft, error) {
	c.mu.Lock()
	e, ok := c.entries[draftKey(sessionID)]
	if ok && !c.now().Before(e.expires) {
		delete(c.entries, draftKey(sessionID))
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var draft model.Draft
	if err := json.Unmarshal(e.data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *MemoryDraftCache) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, draftKey(sessionID))
	return nil
}
