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

// newOrderFixture builds an order service over a fresh in-memory store with
// a small seeded catalog.
func newOrderFixture(t *testing.T) (OrderService, rowstore.Store) {
	t.Helper()
	store := rowstore.NewMemory()
	ctx := context.Background()

	seed := [][]string{
		{"TAT-S", "Small tattoo", "tattoo", "1500", "FALSE"},
		{"TAT-L", "Large tattoo", "tattoo", "4500", "FALSE"},
		{"CARE-KIT", "Aftercare kit", "retail", "350", "FALSE"},
		{"STICKER", "Studio sticker", "retail", "0", "TRUE"},
	}
	for _, row := range seed {
		require.NoError(t, store.AppendRow(ctx, rowstore.SheetMasterItem, row))
	}

	svc := NewOrderService(
		repositories.NewOrderRepository(store),
		repositories.NewMasterItemRepository(store),
	)
	return svc, store
}

func validOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID:      "CUST-0812345678",
		AppointmentDate: "2026-09-05",
		AppointmentTime: "14:30",
		SalesID:         "S01",
		ArtistID:        "A02",
		Channel:         "facebook",
		OrderStatus:     "booking",
		Deposit:         decimal.RequireFromString("300"),
	}
}

func TestCreateOrderStartsWithZeroTotal(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)
	assert.Contains(t, orderID, "ORD-")

	order, err := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.IsZero())
	assert.True(t, decimal.RequireFromString("300").Equal(order.Deposit))
	assert.Equal(t, "booking", order.OrderStatus)
}

func TestCreateOrderCollectsAllViolations(t *testing.T) {
	svc, _ := newOrderFixture(t)

	req := CreateOrderRequest{
		AppointmentDate: "05/09/2026",
		AppointmentTime: "2pm",
		Channel:         "tiktok",
		OrderStatus:     "paused",
	}
	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	// Every broken field must be reported in the single pass.
	assert.GreaterOrEqual(t, len(vErr.Violations), 6)
	joined := vErr.Error()
	assert.Contains(t, joined, "customer_id")
	assert.Contains(t, joined, "appointment_date")
	assert.Contains(t, joined, "appointment_time")
	assert.Contains(t, joined, "sales_id")
	assert.Contains(t, joined, "artist_id")
	assert.Contains(t, joined, "channel")
	assert.Contains(t, joined, "order_status")
}

func TestCreateOrderAllowsEmptyOptionalFields(t *testing.T) {
	svc, _ := newOrderFixture(t)

	req := validOrderRequest()
	req.AppointmentTime = ""
	req.Channel = ""
	req.OrderStatus = ""

	_, err := svc.CreateOrder(context.Background(), req)
	assert.NoError(t, err)
}

func TestAddOrderItemSnapshotsCatalogPrice(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)

	itemID, err := svc.AddOrderItem(ctx, orderID, "TAT-S", false)
	require.NoError(t, err)
	assert.Contains(t, itemID, "ITEM-")

	order, err := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Small tattoo", order.Items[0].ItemName)
	assert.True(t, decimal.RequireFromString("1500").Equal(order.Items[0].ListPrice))
}

func TestAddOrderItemUnknownCode(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)

	_, err = svc.AddOrderItem(ctx, orderID, "NOPE", false)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateTotalSumsItems(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, orderID, "TAT-S", false)
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, orderID, "CARE-KIT", true)
	require.NoError(t, err)

	total, err := svc.UpdateTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1850").Equal(total))

	// Recomputing without changes must be idempotent.
	again, err := svc.UpdateTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.Equal(again))
}

func TestRemoveOrderItemDoesNotRecomputeTotal(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)
	itemID, err := svc.AddOrderItem(ctx, orderID, "TAT-S", false)
	require.NoError(t, err)
	_, err = svc.UpdateTotal(ctx, orderID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOrderItem(ctx, itemID))

	order, err := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, order.Items)
	// The stale total stays until the caller recomputes.
	assert.True(t, decimal.RequireFromString("1500").Equal(order.TotalPrice))

	total, err := svc.UpdateTotal(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestRemoveOrderItemUnknown(t *testing.T) {
	svc, _ := newOrderFixture(t)
	err := svc.RemoveOrderItem(context.Background(), "ITEM-missing")
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
}

func TestCreateOrderWithItems(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, total, err := svc.CreateOrderWithItems(ctx, CreateOrderWithItemsRequest{
		CreateOrderRequest: validOrderRequest(),
		ItemCodes:          []string{"TAT-L", "CARE-KIT", "STICKER"},
		UpsellFlags:        []bool{false, true, false},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4850").Equal(total))

	order, err := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 3)
	assert.True(t, order.Items[1].IsUpsell)
	assert.True(t, order.TotalPrice.Equal(total))
}

func TestCreateOrderWithItemsRequiresItems(t *testing.T) {
	svc, _ := newOrderFixture(t)

	_, _, err := svc.CreateOrderWithItems(context.Background(), CreateOrderWithItemsRequest{
		CreateOrderRequest: validOrderRequest(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderWithItemsFlagLengthMismatch(t *testing.T) {
	svc, _ := newOrderFixture(t)

	_, _, err := svc.CreateOrderWithItems(context.Background(), CreateOrderWithItemsRequest{
		CreateOrderRequest: validOrderRequest(),
		ItemCodes:          []string{"TAT-S", "CARE-KIT"},
		UpsellFlags:        []bool{true},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderWithItemsPartialFailureKeepsOrder(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, _, err := svc.CreateOrderWithItems(ctx, CreateOrderWithItemsRequest{
		CreateOrderRequest: validOrderRequest(),
		ItemCodes:          []string{"TAT-S", "NOPE"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemNotFound)
	require.NotEmpty(t, orderID, "the order id must come back so the operator can repair")

	// The order exists with the first item attached and no total written.
	order, getErr := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, getErr)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "TAT-S", order.Items[0].ItemCode)
	assert.True(t, order.TotalPrice.IsZero())
}

func TestUpdateOrderMergesAndValidates(t *testing.T) {
	svc, _ := newOrderFixture(t)
	ctx := context.Background()

	orderID, err := svc.CreateOrder(ctx, validOrderRequest())
	require.NoError(t, err)

	status := "done"
	note := "customer rescheduled"
	require.NoError(t, svc.UpdateOrder(ctx, orderID, OrderUpdate{OrderStatus: &status, Note: &note}))

	order, err := svc.GetOrderByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "done", order.OrderStatus)
	assert.Equal(t, "customer rescheduled", order.Note)
	// Untouched fields survive the partial update.
	assert.Equal(t, "facebook", order.Channel)

	bad := "paused"
	err = svc.UpdateOrder(ctx, orderID, OrderUpdate{OrderStatus: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateOrderUnknown(t *testing.T) {
	svc, _ := newOrderFixture(t)
	status := "done"
	err := svc.UpdateOrder(context.Background(), "ORD-missing", OrderUpdate{OrderStatus: &status})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderCascadesItems(t *testing.T) {
	svc, store := newOrderFixture(t)
	ctx := context.Background()

	first, _, err := svc.CreateOrderWithItems(ctx, CreateOrderWithItemsRequest{
		CreateOrderRequest: validOrderRequest(),
		ItemCodes:          []string{"TAT-S", "CARE-KIT"},
	})
	require.NoError(t, err)

	// Seeded directly: order ids are second-resolution timestamps, so a
	// second service-created order in the same test tick would collide.
	second := "ORD-keep"
	require.NoError(t, store.AppendRow(ctx, rowstore.SheetOrders, []string{
		second, "2026-09-01T10:00:00Z", "CUST-keep", "2026-09-05", "10:00",
		"S01", "A02", "line", "booking", "4500", "", "0", "0",
	}))
	require.NoError(t, store.AppendRow(ctx, rowstore.SheetOrderItems, []string{
		"ITEM-keep", second, "TAT-L", "Large tattoo", "4500", "FALSE",
	}))

	require.NoError(t, svc.DeleteOrder(ctx, first))

	_, err = svc.GetOrderByID(ctx, first)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// The other order and its item are untouched.
	kept, err := svc.GetOrderByID(ctx, second)
	require.NoError(t, err)
	require.Len(t, kept.Items, 1)

	rows, err := store.ListRows(ctx, rowstore.SheetOrderItems)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "only the header and the kept order's item remain")
}

func TestDeleteOrderUnknown(t *testing.T) {
	svc, _ := newOrderFixture(t)
	err := svc.DeleteOrder(context.Background(), "ORD-missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetMasterItems(t *testing.T) {
	svc, _ := newOrderFixture(t)

	items, err := svc.GetMasterItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "TAT-S", items[0].ItemCode)
}
