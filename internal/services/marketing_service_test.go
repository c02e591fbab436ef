package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/rowstore"
)

func newMarketingFixture(t *testing.T) (MarketingService, rowstore.Store) {
	t.Helper()
	store := rowstore.NewMemory()
	svc := NewMarketingService(repositories.NewMarketingRepository(store))
	return svc, store
}

func TestUpsertChatRecordAddsThenUpdates(t *testing.T) {
	svc, store := newMarketingFixture(t)
	ctx := context.Background()

	outcome, err := svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "2026-08-01", ChatCount: 12})
	require.NoError(t, err)
	assert.Equal(t, UpsertAdded, outcome)

	outcome, err = svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "2026-08-01", ChatCount: 15, Note: "corrected"})
	require.NoError(t, err)
	assert.Equal(t, UpsertUpdated, outcome)

	rows, err := store.ListRows(ctx, rowstore.SheetChats)
	require.NoError(t, err)
	require.Len(t, rows, 2, "same date stays one row")
	assert.Equal(t, "15", rows[1][1])
	assert.Equal(t, "corrected", rows[1][2])
}

func TestUpsertChatRecordValidation(t *testing.T) {
	svc, _ := newMarketingFixture(t)
	ctx := context.Background()

	_, err := svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "01/08/2026", ChatCount: 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "2026-08-01", ChatCount: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetChatRecords(t *testing.T) {
	svc, _ := newMarketingFixture(t)
	ctx := context.Background()

	_, err := svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "2026-08-01", ChatCount: 12})
	require.NoError(t, err)
	_, err = svc.UpsertChatRecord(ctx, ChatRecordRequest{ChatDate: "2026-08-02", ChatCount: 7})
	require.NoError(t, err)

	chats, err := svc.GetChatRecords(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, 12, chats[0].ChatCount)
}

func TestUpsertAdBudgetAddsThenUpdates(t *testing.T) {
	svc, store := newMarketingFixture(t)
	ctx := context.Background()

	req := AdBudgetRequest{
		WeekStartDate: "2026-08-03",
		WeekEndDate:   "2026-08-09",
		BudgetAmount:  decimal.RequireFromString("500"),
		Platform:      "facebook",
	}
	outcome, err := svc.UpsertAdBudget(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, UpsertAdded, outcome)

	req.BudgetAmount = decimal.RequireFromString("750")
	req.Note = "boosted"
	outcome, err = svc.UpsertAdBudget(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, UpsertUpdated, outcome)

	rows, err := store.ListRows(ctx, rowstore.SheetAdsBudget)
	require.NoError(t, err)
	require.Len(t, rows, 2, "same week and platform stays one row")
	assert.Equal(t, "750", rows[1][2])
	assert.Equal(t, "boosted", rows[1][4])
}

func TestUpsertAdBudgetKeyedByWeekAndPlatform(t *testing.T) {
	svc, store := newMarketingFixture(t)
	ctx := context.Background()

	base := AdBudgetRequest{
		WeekStartDate: "2026-08-03",
		WeekEndDate:   "2026-08-09",
		BudgetAmount:  decimal.RequireFromString("500"),
		Platform:      "facebook",
	}
	_, err := svc.UpsertAdBudget(ctx, base)
	require.NoError(t, err)

	other := base
	other.Platform = "line"
	outcome, err := svc.UpsertAdBudget(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, UpsertAdded, outcome, "a different platform in the same week is a new row")

	nextWeek := base
	nextWeek.WeekStartDate = "2026-08-10"
	nextWeek.WeekEndDate = "2026-08-16"
	outcome, err = svc.UpsertAdBudget(ctx, nextWeek)
	require.NoError(t, err)
	assert.Equal(t, UpsertAdded, outcome)

	rows, err := store.ListRows(ctx, rowstore.SheetAdsBudget)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestUpsertAdBudgetCollectsAllViolations(t *testing.T) {
	svc, _ := newMarketingFixture(t)

	_, err := svc.UpsertAdBudget(context.Background(), AdBudgetRequest{
		WeekStartDate: "bad",
		WeekEndDate:   "also-bad",
		BudgetAmount:  decimal.RequireFromString("-1"),
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 4)
}
