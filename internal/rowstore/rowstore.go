package rowstore

import (
	"context"
	"errors"
)

// Sheet names in the backing store. Each sheet is a flat positional table
// whose first row holds the column headers.
const (
	SheetOrders     = "orders"
	SheetOrderItems = "order_items"
	SheetMasterItem = "master_item"
	SheetStaff      = "staff"
	SheetCustomers  = "customers"
	SheetPayments   = "payments"
	SheetChats      = "chats"
	SheetAdsBudget  = "ads_budget"
)

// SheetHeaders is the expected column layout per sheet. Cell updates address
// columns by position, so this ordering is part of the persistence contract.
var SheetHeaders = map[string][]string{
	SheetOrders: {
		"order_id", "created_at", "customer_id", "appointment_date",
		"appointment_time", "sales_id", "artist_id", "channel",
		"order_status", "total_price", "note", "total_paid", "deposit",
	},
	SheetOrderItems: {
		"order_item_id", "order_id", "item_code", "item_name",
		"list_price", "is_upsell",
	},
	SheetMasterItem: {
		"item_code", "item_name", "category", "list_price", "is_free",
	},
	SheetStaff: {
		"staff_id", "staff_name", "role", "is_active",
	},
	SheetCustomers: {
		"customer_id", "created_at", "full_name", "phone",
		"contact_channel", "note", "drive_folder_id", "folder_url",
	},
	SheetPayments: {
		"payment_id", "order_id", "payment_date", "amount",
		"net_amount", "payment_method", "note",
	},
	SheetChats: {
		"chat_date", "chat_count", "note",
	},
	SheetAdsBudget: {
		"week_start_date", "week_end_date", "budget_amount", "platform", "note",
	},
}

var (
	// ErrSheetNotFound is returned when a named sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrRowOutOfRange is returned when a row index does not address an
	// existing data row. Row 1 is the header row and is never writable.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrStoreUnavailable wraps transport/driver failures against the
	// backing store. Callers surface it with a retry suggestion; the store
	// itself never retries.
	ErrStoreUnavailable = errors.New("row store unavailable")
)

// Store exposes the positional row operations of the backing tabular store.
// Rows and columns are 1-based; row 1 is reserved for headers, so row 2 is
// the first data row. ListRows returns every row including the header.
type Store interface {
	ListRows(ctx context.Context, sheet string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, cells []string) error
	UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
	DeleteRow(ctx context.Context, sheet string, row int) error
}
