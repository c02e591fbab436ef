package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/pkg/utils"
)

// Custom Errors
var (
	ErrValidation        = errors.New("validation failed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("item code not found in catalog")
	ErrOrderItemNotFound = errors.New("order item not found")
)

// Channel and status enumerations. Empty is allowed: walk-in entries are
// often completed later.
var (
	validChannels = []string{"", "facebook", "line", "walkin", "other"}
	validStatuses = []string{"", "booking", "active", "cancel", "done"}
)

// ValidationError carries every violation found in one pass so the caller
// can surface them all at once instead of fixing the form one field at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid order data: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// --- Data Transfer Objects (DTOs) ---

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerID      string          `json:"customer_id"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	SalesID         string          `json:"sales_id"`
	ArtistID        string          `json:"artist_id"`
	Channel         string          `json:"channel"`
	OrderStatus     string          `json:"order_status"`
	Note            string          `json:"note"`
	Deposit         decimal.Decimal `json:"deposit"`
}

// CreateOrderWithItemsRequest creates an order together with its items.
type CreateOrderWithItemsRequest struct {
	CreateOrderRequest
	ItemCodes   []string `json:"item_codes" binding:"required"`
	UpsellFlags []bool   `json:"upsell_flags"`
}

// OrderUpdate holds the editable order fields; nil means leave unchanged.
type OrderUpdate struct {
	AppointmentDate *string `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
	SalesID         *string `json:"sales_id"`
	ArtistID        *string `json:"artist_id"`
	Channel         *string `json:"channel"`
	OrderStatus     *string `json:"order_status"`
	Note            *string `json:"note"`
}

// --- OrderService Interface ---

type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error)
	AddOrderItem(ctx context.Context, orderID, itemCode string, isUpsell bool) (string, error)
	RemoveOrderItem(ctx context.Context, orderItemID string) error
	UpdateTotal(ctx context.Context, orderID string) (decimal.Decimal, error)
	CreateOrderWithItems(ctx context.Context, req CreateOrderWithItemsRequest) (string, decimal.Decimal, error)
	UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error
	DeleteOrder(ctx context.Context, orderID string) error
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	GetMasterItems(ctx context.Context) ([]models.MasterItem, error)
}

// --- orderService Implementation ---

type orderService struct {
	orderRepo  repositories.OrderRepository
	masterRepo repositories.MasterItemRepository
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, mr repositories.MasterItemRepository) OrderService {
	return &orderService{orderRepo: or, masterRepo: mr}
}

// validateOrderData checks the order fields and collects every violation.
func validateOrderData(customerID, appointmentDate, appointmentTime, salesID, artistID, channel, orderStatus string) error {
	var violations []string

	if utils.IsEmpty(customerID) {
		violations = append(violations, "customer_id is required")
	}
	if utils.IsEmpty(appointmentDate) {
		violations = append(violations, "appointment_date is required")
	}
	if _, err := time.Parse("2006-01-02", appointmentDate); err != nil {
		violations = append(violations, fmt.Sprintf("invalid appointment_date %q (expected YYYY-MM-DD)", appointmentDate))
	}
	if !utils.IsEmpty(appointmentTime) {
		if _, err := time.Parse("15:04", appointmentTime); err != nil {
			violations = append(violations, fmt.Sprintf("invalid appointment_time %q (expected HH:MM, e.g. 14:30)", appointmentTime))
		}
	}
	if utils.IsEmpty(salesID) {
		violations = append(violations, "sales_id is required")
	}
	if utils.IsEmpty(artistID) {
		violations = append(violations, "artist_id is required")
	}
	if !containsFold(validChannels, channel) {
		violations = append(violations, fmt.Sprintf("invalid channel %q (allowed: %s)", channel, strings.Join(validChannels[1:], ", ")))
	}
	if !containsFold(validStatuses, orderStatus) {
		violations = append(violations, fmt.Sprintf("invalid order_status %q (allowed: %s)", orderStatus, strings.Join(validStatuses[1:], ", ")))
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func containsFold(allowed []string, value string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return true
		}
	}
	return false
}

// newOrderID derives an order id from the wall clock. Two orders created in
// the same second from different processes collide; accepted, not mitigated.
func newOrderID() string {
	return "ORD-" + time.Now().Format("020106150405")
}

func newOrderItemID() string {
	return "ITEM-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error) {
	utils.LogInfo("Creating order", map[string]interface{}{"customer_id": req.CustomerID, "deposit": req.Deposit.String()})

	if err := validateOrderData(req.CustomerID, req.AppointmentDate, req.AppointmentTime,
		req.SalesID, req.ArtistID, req.Channel, req.OrderStatus); err != nil {
		return "", err
	}

	order := models.Order{
		OrderID:         newOrderID(),
		CreatedAt:       time.Now().Format(time.RFC3339),
		CustomerID:      req.CustomerID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		SalesID:         req.SalesID,
		ArtistID:        req.ArtistID,
		Channel:         req.Channel,
		OrderStatus:     req.OrderStatus,
		TotalPrice:      decimal.Zero, // filled in by UpdateTotal once items exist
		Note:            req.Note,
		TotalPaid:       decimal.Zero,
		Deposit:         req.Deposit,
	}

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	utils.LogInfo("Order created", map[string]interface{}{"order_id": order.OrderID})
	return order.OrderID, nil
}

func (s *orderService) AddOrderItem(ctx context.Context, orderID, itemCode string, isUpsell bool) (string, error) {
	utils.LogDebug("Adding item to order", map[string]interface{}{"order_id": orderID, "item_code": itemCode})

	master, err := s.masterRepo.GetByCode(ctx, itemCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", fmt.Errorf("%w: %q", ErrItemNotFound, itemCode)
		}
		return "", fmt.Errorf("failed to look up item %q: %w", itemCode, err)
	}

	item := models.OrderItem{
		OrderItemID: newOrderItemID(),
		OrderID:     orderID,
		ItemCode:    itemCode,
		// snapshot taken now; later catalog price edits do not touch this row
		ItemName:  master.ItemName,
		ListPrice: master.ListPrice,
		IsUpsell:  isUpsell,
	}

	if err := s.orderRepo.CreateOrderItem(ctx, &item); err != nil {
		return "", fmt.Errorf("failed to add order item: %w", err)
	}

	utils.LogInfo("Order item added", map[string]interface{}{"order_item_id": item.OrderItemID, "item_name": item.ItemName})
	return item.OrderItemID, nil
}

// RemoveOrderItem deletes a single item row. The caller is responsible for
// calling UpdateTotal afterwards; removal does not recompute the order total.
func (s *orderService) RemoveOrderItem(ctx context.Context, orderItemID string) error {
	row, err := s.orderRepo.FindItemRow(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrOrderItemNotFound, orderItemID)
		}
		return fmt.Errorf("failed to locate order item %q: %w", orderItemID, err)
	}
	if err := s.orderRepo.DeleteItemRow(ctx, row); err != nil {
		return fmt.Errorf("failed to delete order item %q: %w", orderItemID, err)
	}
	utils.LogInfo("Order item removed", map[string]interface{}{"order_item_id": orderItemID})
	return nil
}

func (s *orderService) UpdateTotal(ctx context.Context, orderID string) (decimal.Decimal, error) {
	items, err := s.orderRepo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load items for order %q: %w", orderID, err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.ListPrice)
	}

	_, row, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return decimal.Zero, fmt.Errorf("failed to locate order %q: %w", orderID, err)
	}

	if err := s.orderRepo.UpdateOrderCell(ctx, row, models.OrderColTotalPrice, total.String()); err != nil {
		return decimal.Zero, fmt.Errorf("failed to write total for order %q: %w", orderID, err)
	}

	utils.LogInfo("Order total updated", map[string]interface{}{"order_id": orderID, "total": total.String()})
	return total, nil
}

// CreateOrderWithItems is the main entry point of the order form: validate,
// create the order, attach each item, then recompute the total. The steps
// are not atomic; a failure partway leaves the order with the items attached
// so far and whatever total was last written.
func (s *orderService) CreateOrderWithItems(ctx context.Context, req CreateOrderWithItemsRequest) (string, decimal.Decimal, error) {
	if len(req.ItemCodes) == 0 {
		return "", decimal.Zero, newValidationError("at least one item is required")
	}
	upsellFlags := req.UpsellFlags
	if len(upsellFlags) == 0 {
		upsellFlags = make([]bool, len(req.ItemCodes))
	}
	if len(upsellFlags) != len(req.ItemCodes) {
		return "", decimal.Zero, newValidationError("upsell_flags length does not match item_codes")
	}

	orderID, err := s.CreateOrder(ctx, req.CreateOrderRequest)
	if err != nil {
		return "", decimal.Zero, err
	}

	for i, code := range req.ItemCodes {
		if _, err := s.AddOrderItem(ctx, orderID, code, upsellFlags[i]); err != nil {
			return orderID, decimal.Zero, fmt.Errorf("order %s created but attaching item %q failed: %w", orderID, code, err)
		}
	}

	total, err := s.UpdateTotal(ctx, orderID)
	if err != nil {
		return orderID, decimal.Zero, err
	}

	utils.LogInfo("Order completed", map[string]interface{}{"order_id": orderID, "total": total.String()})
	return orderID, total, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error {
	current, row, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("failed to locate order %q: %w", orderID, err)
	}

	merged := *current
	if update.AppointmentDate != nil {
		merged.AppointmentDate = *update.AppointmentDate
	}
	if update.AppointmentTime != nil {
		merged.AppointmentTime = *update.AppointmentTime
	}
	if update.SalesID != nil {
		merged.SalesID = *update.SalesID
	}
	if update.ArtistID != nil {
		merged.ArtistID = *update.ArtistID
	}
	if update.Channel != nil {
		merged.Channel = *update.Channel
	}
	if update.OrderStatus != nil {
		merged.OrderStatus = *update.OrderStatus
	}
	if update.Note != nil {
		merged.Note = *update.Note
	}

	if err := validateOrderData(merged.CustomerID, merged.AppointmentDate, merged.AppointmentTime,
		merged.SalesID, merged.ArtistID, merged.Channel, merged.OrderStatus); err != nil {
		return err
	}

	// Cell-by-cell writes, only for fields the caller supplied.
	writes := []struct {
		set   bool
		col   int
		value string
	}{
		{update.AppointmentDate != nil, models.OrderColAppointmentDate, merged.AppointmentDate},
		{update.AppointmentTime != nil, models.OrderColAppointmentTime, merged.AppointmentTime},
		{update.SalesID != nil, models.OrderColSalesID, merged.SalesID},
		{update.ArtistID != nil, models.OrderColArtistID, merged.ArtistID},
		{update.Channel != nil, models.OrderColChannel, merged.Channel},
		{update.OrderStatus != nil, models.OrderColOrderStatus, merged.OrderStatus},
		{update.Note != nil, models.OrderColNote, merged.Note},
	}
	for _, w := range writes {
		if !w.set {
			continue
		}
		if err := s.orderRepo.UpdateOrderCell(ctx, row, w.col, w.value); err != nil {
			return fmt.Errorf("failed to update order %q: %w", orderID, err)
		}
	}

	utils.LogInfo("Order updated", map[string]interface{}{"order_id": orderID})
	return nil
}

// DeleteOrder removes the order's items first, then the order row itself.
// Not transactional: a failure after some item deletes leaves partial state.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	if _, _, err := s.orderRepo.FindOrderRow(ctx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("failed to locate order %q: %w", orderID, err)
	}

	itemRows, err := s.orderRepo.FindItemRowsByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to list items of order %q: %w", orderID, err)
	}
	// Highest row first: deleting a row shifts everything below it up.
	for i := len(itemRows) - 1; i >= 0; i-- {
		if err := s.orderRepo.DeleteItemRow(ctx, itemRows[i]); err != nil {
			return fmt.Errorf("failed to delete item row %d of order %q: %w", itemRows[i], orderID, err)
		}
	}

	_, row, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to relocate order %q for delete: %w", orderID, err)
	}
	if err := s.orderRepo.DeleteOrderRow(ctx, row); err != nil {
		return fmt.Errorf("failed to delete order %q: %w", orderID, err)
	}

	utils.LogInfo("Order deleted", map[string]interface{}{"order_id": orderID, "items_removed": len(itemRows)})
	return nil
}

// GetMasterItems returns the service catalog for the order form.
func (s *orderService) GetMasterItems(ctx context.Context) ([]models.MasterItem, error) {
	items, err := s.masterRepo.GetMasterItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog items: %w", err)
	}
	return items, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, _, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order %q: %w", orderID, err)
	}

	items, err := s.orderRepo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		// order header found; return it without items rather than failing the read
		utils.LogError(err, "Failed to load items for order "+orderID)
	} else {
		order.Items = items
	}
	return order, nil
}
