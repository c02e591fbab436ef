package rowstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeedsHeaders(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for sheet, headers := range SheetHeaders {
		rows, err := store.ListRows(ctx, sheet)
		require.NoError(t, err, sheet)
		require.Len(t, rows, 1, sheet)
		assert.Equal(t, headers, rows[0], sheet)
	}
}

func TestMemoryAppendAndList(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-01", "12", ""}))
	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-02", "7", "holiday"}))

	rows, err := store.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-08-01", rows[1][0])
	assert.Equal(t, "7", rows[2][1])
}

func TestMemoryUpdateCell(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-01", "12", ""}))
	require.NoError(t, store.UpdateCell(ctx, SheetChats, 2, 2, "15"))

	rows, err := store.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	assert.Equal(t, "15", rows[1][1])
}

func TestMemoryUpdateCellExtendsShortRow(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	// Row shorter than the addressed column gets padded out.
	require.NoError(t, store.AppendRow(ctx, SheetOrders, []string{"ORD-1"}))
	require.NoError(t, store.UpdateCell(ctx, SheetOrders, 2, 10, "1500"))

	rows, err := store.ListRows(ctx, SheetOrders)
	require.NoError(t, err)
	require.Len(t, rows[1], 10)
	assert.Equal(t, "1500", rows[1][9])
}

func TestMemoryHeaderRowIsProtected(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, store.UpdateCell(ctx, SheetChats, 1, 1, "x"), ErrRowOutOfRange)
	assert.ErrorIs(t, store.DeleteRow(ctx, SheetChats, 1), ErrRowOutOfRange)
}

func TestMemoryRowOutOfRange(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, store.UpdateCell(ctx, SheetChats, 5, 1, "x"), ErrRowOutOfRange)
	assert.ErrorIs(t, store.DeleteRow(ctx, SheetChats, 5), ErrRowOutOfRange)
}

func TestMemoryUnknownSheet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.ListRows(ctx, "nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.ErrorIs(t, store.AppendRow(ctx, "nope", []string{"x"}), ErrSheetNotFound)
}

func TestMemoryDeleteRowShiftsRowsUp(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-01", "1", ""}))
	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-02", "2", ""}))
	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-03", "3", ""}))

	require.NoError(t, store.DeleteRow(ctx, SheetChats, 3))

	rows, err := store.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-08-01", rows[1][0])
	assert.Equal(t, "2026-08-03", rows[2][0])
}

func TestMemoryListReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, SheetChats, []string{"2026-08-01", "1", ""}))

	rows, err := store.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	rows[1][0] = "mutated"

	fresh, err := store.ListRows(ctx, SheetChats)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", fresh[1][0])
}
