package insight_test

import (
	"context"
	"sync"
	"time"

	"taskboard.app/server/internal/model"
)

type mockTaskStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.Task, error)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

type mockUserStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// stubProvider counts calls and returns a fixed response. The zero value
// behaves like an unconfigured provider (empty response, no error).
type stubProvider struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (p *stubProvider) Generate(_ context.Context, _, _ string, _ time.Duration) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.response, p.err
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type memCacheEntry struct {
	val []byte
	ttl time.Duration
}

// memCache is an in-memory Cache for tests. TTLs are recorded, not enforced.
type memCache struct {
	mu      sync.Mutex
	entries map[string]memCacheEntry
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]memCacheEntry)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.val, true
}

func (c *memCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memCacheEntry{val: val, ttl: ttl}
}

func (c *memCache) Remove(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

func (c *memCache) ttlOf(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key].ttl
}
