package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// OrderRepository defines the row-store operations for orders and their items.
// Row indices returned by the lookup methods are 1-based sheet rows, usable
// directly with UpdateOrderCell / DeleteOrderRow.
type OrderRepository interface {
	// Order methods
	GetOrders(ctx context.Context) ([]models.Order, error)
	FindOrderRow(ctx context.Context, orderID string) (*models.Order, int, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderCell(ctx context.Context, row, col int, value string) error
	DeleteOrderRow(ctx context.Context, row int) error

	// OrderItem methods
	GetOrderItems(ctx context.Context) ([]models.OrderItem, error)
	GetItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
	FindItemRow(ctx context.Context, orderItemID string) (int, error)
	FindItemRowsByOrderID(ctx context.Context, orderID string) ([]int, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	DeleteItemRow(ctx context.Context, row int) error
}

type orderRepository struct {
	store rowstore.Store
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(store rowstore.Store) OrderRepository {
	return &orderRepository{store: store}
}

// --- Order Methods ---

func (r *orderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetOrders)
	if err != nil {
		return nil, fmt.Errorf("%w: listing orders: %v", ErrStoreError, err)
	}
	orders := make([]models.Order, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		orders = append(orders, models.OrderFromRow(rows[i]))
	}
	return orders, nil
}

func (r *orderRepository) FindOrderRow(ctx context.Context, orderID string) (*models.Order, int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetOrders)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing orders: %v", ErrStoreError, err)
	}
	idx := findRowIndex(rows, models.OrderColOrderID, orderID)
	if idx == 0 {
		return nil, 0, ErrNotFound
	}
	order := models.OrderFromRow(rows[idx-1])
	return &order, idx, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetOrders, order.ToRow()); err != nil {
		return fmt.Errorf("%w: appending order %s: %v", ErrStoreError, order.OrderID, err)
	}
	return nil
}

func (r *orderRepository) UpdateOrderCell(ctx context.Context, row, col int, value string) error {
	err := r.store.UpdateCell(ctx, rowstore.SheetOrders, row, col, value)
	if err != nil {
		return fmt.Errorf("%w: updating orders cell (%d,%d): %v", ErrStoreError, row, col, err)
	}
	return nil
}

func (r *orderRepository) DeleteOrderRow(ctx context.Context, row int) error {
	if err := r.store.DeleteRow(ctx, rowstore.SheetOrders, row); err != nil {
		return fmt.Errorf("%w: deleting orders row %d: %v", ErrStoreError, row, err)
	}
	return nil
}

// --- OrderItem Methods ---

func (r *orderRepository) GetOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetOrderItems)
	if err != nil {
		return nil, fmt.Errorf("%w: listing order items: %v", ErrStoreError, err)
	}
	items := make([]models.OrderItem, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		items = append(items, models.OrderItemFromRow(rows[i]))
	}
	return items, nil
}

func (r *orderRepository) GetItemsByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	items, err := r.GetOrderItems(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.OrderID == orderID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (r *orderRepository) FindItemRow(ctx context.Context, orderItemID string) (int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetOrderItems)
	if err != nil {
		return 0, fmt.Errorf("%w: listing order items: %v", ErrStoreError, err)
	}
	idx := findRowIndex(rows, 1, orderItemID)
	if idx == 0 {
		return 0, ErrNotFound
	}
	return idx, nil
}

func (r *orderRepository) FindItemRowsByOrderID(ctx context.Context, orderID string) ([]int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetOrderItems)
	if err != nil {
		return nil, fmt.Errorf("%w: listing order items: %v", ErrStoreError, err)
	}
	var indices []int
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) >= 2 && row[1] == orderID {
			indices = append(indices, i+1)
		}
	}
	return indices, nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetOrderItems, item.ToRow()); err != nil {
		return fmt.Errorf("%w: appending order item %s: %v", ErrStoreError, item.OrderItemID, err)
	}
	return nil
}

func (r *orderRepository) DeleteItemRow(ctx context.Context, row int) error {
	if err := r.store.DeleteRow(ctx, rowstore.SheetOrderItems, row); err != nil {
		return fmt.Errorf("%w: deleting order_items row %d: %v", ErrStoreError, row, err)
	}
	return nil
}
