package rowstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ct_studio_backend/pkg/utils"
)

// CacheBackend stores sheet snapshots for the read-through cache.
// A miss is (nil, false, nil); backend failures degrade to a miss upstream.
type CacheBackend interface {
	Get(ctx context.Context, key string) ([][]string, bool, error)
	Set(ctx context.Context, key string, rows [][]string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cached wraps a Store with a time-bounded read cache over ListRows.
// Every write invalidates the sheet's snapshot synchronously before the
// write reports success, so the next read observes the change.
type Cached struct {
	store   Store
	backend CacheBackend
	ttl     time.Duration
}

// NewCached wraps store with the given backend. ttl bounds snapshot staleness
// for reads that race a writer in another process.
func NewCached(store Store, backend CacheBackend, ttl time.Duration) *Cached {
	return &Cached{store: store, backend: backend, ttl: ttl}
}

func (c *Cached) ListRows(ctx context.Context, sheet string) ([][]string, error) {
	rows, ok, err := c.backend.Get(ctx, sheet)
	if err != nil {
		utils.LogWarn("Sheet cache read failed, falling through", map[string]interface{}{"sheet": sheet, "error": err.Error()})
	} else if ok {
		return rows, nil
	}

	rows, err = c.store.ListRows(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if err := c.backend.Set(ctx, sheet, rows, c.ttl); err != nil {
		utils.LogWarn("Sheet cache write failed", map[string]interface{}{"sheet": sheet, "error": err.Error()})
	}
	return rows, nil
}

func (c *Cached) AppendRow(ctx context.Context, sheet string, cells []string) error {
	if err := c.store.AppendRow(ctx, sheet, cells); err != nil {
		return err
	}
	return c.invalidate(ctx, sheet)
}

func (c *Cached) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	if err := c.store.UpdateCell(ctx, sheet, row, col, value); err != nil {
		return err
	}
	return c.invalidate(ctx, sheet)
}

func (c *Cached) DeleteRow(ctx context.Context, sheet string, row int) error {
	if err := c.store.DeleteRow(ctx, sheet, row); err != nil {
		return err
	}
	return c.invalidate(ctx, sheet)
}

func (c *Cached) invalidate(ctx context.Context, sheet string) error {
	if err := c.backend.Delete(ctx, sheet); err != nil {
		// The write reached the store; a stale snapshot self-heals at TTL
		// but the caller is told the sequence did not fully complete.
		return err
	}
	return nil
}

// --- In-process backend ---

type memoryCacheEntry struct {
	rows      [][]string
	expiresAt time.Time
}

// MemoryCache is the default in-process cache backend.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryCacheEntry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([][]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.rows, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, rows [][]string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryCacheEntry{rows: rows, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// --- Redis backend ---

// RedisCache keeps sheet snapshots in Redis so several backend instances
// share one cache and one invalidation.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, prefix: "sheet:"}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([][]string, bool, error) {
	payload, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows [][]string
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rows [][]string, ttl time.Duration) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.prefix+key, payload, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
