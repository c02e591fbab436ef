package rowstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store and counts how often each method runs.
type countingStore struct {
	inner Store
	lists int
}

func (c *countingStore) ListRows(ctx context.Context, sheet string) ([][]string, error) {
	c.lists++
	return c.inner.ListRows(ctx, sheet)
}

func (c *countingStore) AppendRow(ctx context.Context, sheet string, cells []string) error {
	return c.inner.AppendRow(ctx, sheet, cells)
}

func (c *countingStore) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	return c.inner.UpdateCell(ctx, sheet, row, col, value)
}

func (c *countingStore) DeleteRow(ctx context.Context, sheet string, row int) error {
	return c.inner.DeleteRow(ctx, sheet, row)
}

func TestCachedServesRepeatReadsFromCache(t *testing.T) {
	counting := &countingStore{inner: NewMemory()}
	cached := NewCached(counting, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	_, err = cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	_, err = cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.lists, "repeat reads should hit the cache")
}

func TestCachedInvalidatesOnWrite(t *testing.T) {
	counting := &countingStore{inner: NewMemory()}
	cached := NewCached(counting, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Equal(t, 1, counting.lists)

	require.NoError(t, cached.AppendRow(ctx, SheetChats, []string{"2026-08-01", "4", ""}))

	rows, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.lists, "write must invalidate the snapshot")
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-08-01", rows[1][0])
}

func TestCachedInvalidationIsPerSheet(t *testing.T) {
	counting := &countingStore{inner: NewMemory()}
	cached := NewCached(counting, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	_, err = cached.ListRows(ctx, SheetOrders)
	require.NoError(t, err)
	require.Equal(t, 2, counting.lists)

	require.NoError(t, cached.AppendRow(ctx, SheetChats, []string{"2026-08-01", "4", ""}))

	_, err = cached.ListRows(ctx, SheetOrders)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.lists, "orders snapshot must survive a chats write")
}

func TestCachedUpdateAndDeleteInvalidate(t *testing.T) {
	counting := &countingStore{inner: NewMemory()}
	cached := NewCached(counting, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	require.NoError(t, cached.AppendRow(ctx, SheetChats, []string{"2026-08-01", "4", ""}))

	_, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Equal(t, 1, counting.lists)

	require.NoError(t, cached.UpdateCell(ctx, SheetChats, 2, 2, "9"))
	rows, err := cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Equal(t, 2, counting.lists)
	assert.Equal(t, "9", rows[1][1])

	require.NoError(t, cached.DeleteRow(ctx, SheetChats, 2))
	rows, err = cached.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Equal(t, 3, counting.lists)
	assert.Len(t, rows, 1)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "chats", [][]string{{"a"}}, -time.Second))

	_, ok, err := cache.Get(ctx, "chats")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must read as a miss")
}

func TestMemoryCacheDelete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "chats", [][]string{{"a"}}, time.Minute))
	require.NoError(t, cache.Delete(ctx, "chats"))

	_, ok, err := cache.Get(ctx, "chats")
	require.NoError(t, err)
	assert.False(t, ok)
}
