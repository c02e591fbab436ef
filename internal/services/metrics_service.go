package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/repositories"
)

// ChannelStats is the per-channel slice of the dashboard.
type ChannelStats struct {
	Orders int             `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

// DashboardSummary bundles every KPI for one date window. Nothing here is
// persisted; the numbers are recomputed from the sheets on every request.
type DashboardSummary struct {
	Sales              decimal.Decimal         `json:"sales"`
	Income             decimal.Decimal         `json:"income"`
	OrderCount         int                     `json:"order_count"`
	ItemsSold          int                     `json:"items_sold"`
	AOV                decimal.Decimal         `json:"aov"`
	RevenuePerCustomer decimal.Decimal         `json:"revenue_per_customer"`
	UpsellCount        int                     `json:"upsell_count"`
	UpsellValue        decimal.Decimal         `json:"upsell_value"`
	UpsellRate         float64                 `json:"upsell_rate"`
	OrdersWithUpsell   int                     `json:"orders_with_upsell"`
	ChannelPerformance map[string]ChannelStats `json:"channel_performance"`
	ConversionRate     float64                 `json:"conversion_rate"`
	ROAS               float64                 `json:"roas"`
}

// StaffPerformance is the per-salesperson aggregation of the window.
type StaffPerformance struct {
	SalesID    string          `json:"sales_id"`
	OrderCount int             `json:"order_count"`
	Sales      decimal.Decimal `json:"sales"`
}

// --- MetricsService Interface ---

type MetricsService interface {
	GetDashboardSummary(ctx context.Context, start, end time.Time) (*DashboardSummary, error)
	GetSalesPerformance(ctx context.Context, start, end time.Time) ([]StaffPerformance, error)
}

// --- metricsService Implementation ---

type metricsService struct {
	orderRepo     repositories.OrderRepository
	paymentRepo   repositories.PaymentRepository
	marketingRepo repositories.MarketingRepository
}

// NewMetricsService creates a new instance of MetricsService.
func NewMetricsService(
	or repositories.OrderRepository,
	pr repositories.PaymentRepository,
	mr repositories.MarketingRepository,
) MetricsService {
	return &metricsService{orderRepo: or, paymentRepo: pr, marketingRepo: mr}
}

// parseRecordDate extracts the calendar date from a date cell, accepting
// plain YYYY-MM-DD and full ISO timestamps (the part before 'T').
func parseRecordDate(value string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(value), "T")
	d, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// inDateRange is the shared window filter: inclusive on both ends, and
// records with missing or unparseable dates are silently excluded.
func inDateRange(value string, start, end time.Time) bool {
	d, ok := parseRecordDate(value)
	if !ok {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

func filterOrders(orders []models.Order, start, end time.Time) []models.Order {
	var filtered []models.Order
	for _, o := range orders {
		if inDateRange(o.CreatedAt, start, end) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func calculateSales(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}
	return total
}

func calculateIncome(payments []models.Payment, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if inDateRange(p.PaymentDate, start, end) {
			total = total.Add(p.NetAmount)
		}
	}
	return total
}

// countItemsSold counts items attached to the window's orders, excluding
// zero-priced free items.
func countItemsSold(items []models.OrderItem, orderIDs map[string]bool) int {
	count := 0
	for _, item := range items {
		if orderIDs[item.OrderID] && item.ListPrice.IsPositive() {
			count++
		}
	}
	return count
}

func calculateAOV(sales decimal.Decimal, orderCount int) decimal.Decimal {
	if orderCount == 0 {
		return decimal.Zero
	}
	return sales.Div(decimal.NewFromInt(int64(orderCount)))
}

func calculateRevenuePerCustomer(orders []models.Order, sales decimal.Decimal) decimal.Decimal {
	unique := make(map[string]bool)
	for _, o := range orders {
		if o.CustomerID != "" {
			unique[o.CustomerID] = true
		}
	}
	if len(unique) == 0 {
		return decimal.Zero
	}
	return sales.Div(decimal.NewFromInt(int64(len(unique))))
}

type upsellMetrics struct {
	count            int
	value            decimal.Decimal
	rate             float64
	ordersWithUpsell int
}

func calculateUpsellMetrics(items []models.OrderItem, orderIDs map[string]bool, orderCount int) upsellMetrics {
	m := upsellMetrics{value: decimal.Zero}
	withUpsell := make(map[string]bool)
	for _, item := range items {
		if orderIDs[item.OrderID] && item.IsUpsell {
			m.count++
			m.value = m.value.Add(item.ListPrice)
			withUpsell[item.OrderID] = true
		}
	}
	m.ordersWithUpsell = len(withUpsell)
	if orderCount > 0 {
		m.rate = float64(m.ordersWithUpsell) / float64(orderCount) * 100
	}
	return m
}

func calculateChannelPerformance(orders []models.Order) map[string]ChannelStats {
	channels := make(map[string]ChannelStats)
	for _, o := range orders {
		channel := o.Channel
		if channel == "" {
			channel = "unknown"
		}
		stats := channels[channel]
		stats.Orders++
		stats.Sales = stats.Sales.Add(o.TotalPrice)
		channels[channel] = stats
	}
	return channels
}

func calculateConversionRate(orderCount int, chats []models.ChatRecord, start, end time.Time) float64 {
	totalChats := 0
	for _, c := range chats {
		if inDateRange(c.ChatDate, start, end) {
			totalChats += c.ChatCount
		}
	}
	if totalChats == 0 {
		return 0
	}
	return float64(orderCount) / float64(totalChats) * 100
}

// calculateROAS divides window income by window ad spend. Budgets are
// attributed to the window by their week_start_date.
func calculateROAS(income decimal.Decimal, budgets []models.AdBudget, start, end time.Time) float64 {
	totalSpend := decimal.Zero
	for _, b := range budgets {
		if inDateRange(b.WeekStartDate, start, end) {
			totalSpend = totalSpend.Add(b.BudgetAmount)
		}
	}
	if totalSpend.IsZero() {
		return 0
	}
	roas, _ := income.Div(totalSpend).Float64()
	return roas
}

func (s *metricsService) GetDashboardSummary(ctx context.Context, start, end time.Time) (*DashboardSummary, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for dashboard: %w", err)
	}
	items, err := s.orderRepo.GetOrderItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items for dashboard: %w", err)
	}
	payments, err := s.paymentRepo.GetPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for dashboard: %w", err)
	}
	chats, err := s.marketingRepo.GetChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chats for dashboard: %w", err)
	}
	budgets, err := s.marketingRepo.GetAdBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ads budget for dashboard: %w", err)
	}

	windowOrders := filterOrders(orders, start, end)
	orderIDs := make(map[string]bool, len(windowOrders))
	for _, o := range windowOrders {
		orderIDs[o.OrderID] = true
	}

	sales := calculateSales(windowOrders)
	income := calculateIncome(payments, start, end)
	upsell := calculateUpsellMetrics(items, orderIDs, len(windowOrders))

	return &DashboardSummary{
		Sales:              sales,
		Income:             income,
		OrderCount:         len(windowOrders),
		ItemsSold:          countItemsSold(items, orderIDs),
		AOV:                calculateAOV(sales, len(windowOrders)),
		RevenuePerCustomer: calculateRevenuePerCustomer(windowOrders, sales),
		UpsellCount:        upsell.count,
		UpsellValue:        upsell.value,
		UpsellRate:         upsell.rate,
		OrdersWithUpsell:   upsell.ordersWithUpsell,
		ChannelPerformance: calculateChannelPerformance(windowOrders),
		ConversionRate:     calculateConversionRate(len(windowOrders), chats, start, end),
		ROAS:               calculateROAS(income, budgets, start, end),
	}, nil
}

func (s *metricsService) GetSalesPerformance(ctx context.Context, start, end time.Time) ([]StaffPerformance, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for sales performance: %w", err)
	}

	byStaff := make(map[string]*StaffPerformance)
	for _, o := range filterOrders(orders, start, end) {
		if o.SalesID == "" {
			continue
		}
		perf, ok := byStaff[o.SalesID]
		if !ok {
			perf = &StaffPerformance{SalesID: o.SalesID, Sales: decimal.Zero}
			byStaff[o.SalesID] = perf
		}
		perf.OrderCount++
		perf.Sales = perf.Sales.Add(o.TotalPrice)
	}

	result := make([]StaffPerformance, 0, len(byStaff))
	for _, perf := range byStaff {
		result = append(result, *perf)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sales.GreaterThan(result[j].Sales)
	})
	return result, nil
}
