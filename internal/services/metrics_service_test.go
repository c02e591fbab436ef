package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/rowstore"
)

// newMetricsFixture seeds a month of studio activity for August 2026.
func newMetricsFixture(t *testing.T) (MetricsService, rowstore.Store) {
	t.Helper()
	store := rowstore.NewMemory()
	ctx := context.Background()

	orders := [][]string{
		{"ORD-A", "2026-08-05T10:00:00Z", "C1", "2026-08-07", "10:00", "S01", "A01", "facebook", "done", "1500", "", "0", "0"},
		{"ORD-B", "2026-08-10T15:30:00Z", "C2", "2026-08-12", "13:00", "S02", "A01", "line", "done", "2000", "", "0", "0"},
		{"ORD-C", "2026-08-12", "C1", "2026-08-15", "11:00", "S01", "A02", "", "active", "1000", "", "0", "0"},
		// Outside the window and unparseable dates are both excluded.
		{"ORD-OLD", "2026-07-02T09:00:00Z", "C3", "2026-07-04", "10:00", "S03", "A01", "walkin", "done", "9999", "", "0", "0"},
		{"ORD-BAD", "not-a-date", "C4", "2026-08-20", "10:00", "S03", "A01", "other", "done", "7777", "", "0", "0"},
	}
	for _, row := range orders {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetOrders, row))
	}

	items := [][]string{
		{"ITEM-1", "ORD-A", "TAT-S", "Small tattoo", "1500", "FALSE"},
		{"ITEM-2", "ORD-B", "TAT-S", "Small tattoo", "1500", "FALSE"},
		{"ITEM-3", "ORD-B", "CARE-KIT", "Aftercare kit", "500", "TRUE"},
		{"ITEM-4", "ORD-C", "TOUCH-UP", "Touch up", "1000", "FALSE"},
		// Free item: never counted as sold.
		{"ITEM-5", "ORD-A", "STICKER", "Studio sticker", "0", "FALSE"},
		{"ITEM-6", "ORD-OLD", "TAT-S", "Small tattoo", "9999", "TRUE"},
	}
	for _, row := range items {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetOrderItems, row))
	}

	payments := [][]string{
		{"PAY-1", "ORD-A", "2026-08-06T12:00:00Z", "1000", "970", "credit_card_3%", ""},
		{"PAY-2", "ORD-OLD", "2026-07-03", "500", "500", "cash", ""},
	}
	for _, row := range payments {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetPayments, row))
	}

	chats := [][]string{
		{"2026-08-05", "10", ""},
		{"2026-08-20", "4", ""},
		{"2026-07-01", "99", ""},
	}
	for _, row := range chats {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetChats, row))
	}

	budgets := [][]string{
		{"2026-08-03", "2026-08-09", "500", "facebook", ""},
		{"2026-07-06", "2026-07-12", "1000", "facebook", ""},
	}
	for _, row := range budgets {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetAdsBudget, row))
	}

	svc := NewMetricsService(
		repositories.NewOrderRepository(store),
		repositories.NewPaymentRepository(store),
		repositories.NewMarketingRepository(store),
	)
	return svc, store
}

func august2026() (time.Time, time.Time) {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
}

func TestGetDashboardSummary(t *testing.T) {
	svc, _ := newMetricsFixture(t)
	start, end := august2026()

	summary, err := svc.GetDashboardSummary(context.Background(), start, end)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("4500").Equal(summary.Sales), "sales: %s", summary.Sales)
	assert.True(t, decimal.RequireFromString("970").Equal(summary.Income), "income: %s", summary.Income)
	assert.Equal(t, 3, summary.OrderCount)
	assert.Equal(t, 4, summary.ItemsSold, "free items do not count as sold")
	assert.True(t, decimal.RequireFromString("1500").Equal(summary.AOV), "aov: %s", summary.AOV)
	assert.True(t, decimal.RequireFromString("2250").Equal(summary.RevenuePerCustomer), "rpc: %s", summary.RevenuePerCustomer)

	assert.Equal(t, 1, summary.UpsellCount)
	assert.True(t, decimal.RequireFromString("500").Equal(summary.UpsellValue))
	assert.Equal(t, 1, summary.OrdersWithUpsell)
	assert.InDelta(t, 100.0/3.0, summary.UpsellRate, 0.01)

	require.Len(t, summary.ChannelPerformance, 3)
	assert.Equal(t, 1, summary.ChannelPerformance["facebook"].Orders)
	assert.True(t, decimal.RequireFromString("1500").Equal(summary.ChannelPerformance["facebook"].Sales))
	assert.Equal(t, 1, summary.ChannelPerformance["line"].Orders)
	assert.Equal(t, 1, summary.ChannelPerformance["unknown"].Orders, "empty channel groups as unknown")

	// 3 orders over 14 chats in the window.
	assert.InDelta(t, 3.0/14.0*100, summary.ConversionRate, 0.01)
	// 970 income over 500 ad spend attributed by week_start_date.
	assert.InDelta(t, 1.94, summary.ROAS, 0.0001)
}

func TestGetDashboardSummaryEmptyWindow(t *testing.T) {
	svc, _ := newMetricsFixture(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	summary, err := svc.GetDashboardSummary(context.Background(), start, end)
	require.NoError(t, err)

	assert.True(t, summary.Sales.IsZero())
	assert.True(t, summary.Income.IsZero())
	assert.Equal(t, 0, summary.OrderCount)
	assert.Equal(t, 0, summary.ItemsSold)
	assert.True(t, summary.AOV.IsZero())
	assert.True(t, summary.RevenuePerCustomer.IsZero())
	assert.Equal(t, 0, summary.UpsellCount)
	assert.Zero(t, summary.UpsellRate)
	assert.Empty(t, summary.ChannelPerformance)
	assert.Zero(t, summary.ConversionRate)
	assert.Zero(t, summary.ROAS)
}

func TestGetDashboardSummaryWindowBoundsInclusive(t *testing.T) {
	svc, _ := newMetricsFixture(t)

	// Window of exactly the creation day of ORD-A.
	day := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	summary, err := svc.GetDashboardSummary(context.Background(), day, day)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.OrderCount)
	assert.True(t, decimal.RequireFromString("1500").Equal(summary.Sales))
}

func TestGetSalesPerformance(t *testing.T) {
	svc, store := newMetricsFixture(t)
	ctx := context.Background()

	// An in-window order with no salesperson is left out of the grouping.
	require.NoError(t, store.AppendRow(ctx, rowstore.SheetOrders, []string{
		"ORD-NOSALES", "2026-08-15", "C5", "2026-08-16", "10:00", "", "A01", "walkin", "done", "800", "", "0", "0",
	}))

	start, end := august2026()
	performance, err := svc.GetSalesPerformance(ctx, start, end)
	require.NoError(t, err)

	require.Len(t, performance, 2)
	assert.Equal(t, "S01", performance[0].SalesID, "highest sales first")
	assert.Equal(t, 2, performance[0].OrderCount)
	assert.True(t, decimal.RequireFromString("2500").Equal(performance[0].Sales))
	assert.Equal(t, "S02", performance[1].SalesID)
	assert.True(t, decimal.RequireFromString("2000").Equal(performance[1].Sales))
}

func TestGetSalesPerformanceEmptyWindow(t *testing.T) {
	svc, _ := newMetricsFixture(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	performance, err := svc.GetSalesPerformance(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, performance)
}
