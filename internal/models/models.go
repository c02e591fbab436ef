package models

import (
	"github.com/shopspring/decimal"

	"ct_studio_backend/pkg/utils"
)

// Column positions (1-based) inside each sheet. Cell updates address columns
// by position, so these constants are the single place the layout is bound.
const (
	OrderColOrderID         = 1
	OrderColCreatedAt       = 2
	OrderColCustomerID      = 3
	OrderColAppointmentDate = 4
	OrderColAppointmentTime = 5
	OrderColSalesID         = 6
	OrderColArtistID        = 7
	OrderColChannel         = 8
	OrderColOrderStatus     = 9
	OrderColTotalPrice      = 10
	OrderColNote            = 11
	OrderColTotalPaid       = 12
	OrderColDeposit         = 13

	CustomerColFullName       = 3
	CustomerColPhone          = 4
	CustomerColContactChannel = 5
	CustomerColNote           = 6
	CustomerColDriveFolderID  = 7
	CustomerColFolderURL      = 8

	ChatColCount = 2
	ChatColNote  = 3

	AdBudgetColWeekEnd  = 2
	AdBudgetColAmount   = 3
	AdBudgetColPlatform = 4
	AdBudgetColNote     = 5
)

// cellAt tolerates short rows: sheets drop trailing empty cells.
func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

// Order is one customer appointment with attached line items and a derived
// total. total_price is recomputed from the items after every add/remove;
// deposit is tracked in its own column and never folded into the total.
type Order struct {
	OrderID         string          `json:"order_id"`
	CreatedAt       string          `json:"created_at"`
	CustomerID      string          `json:"customer_id"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	SalesID         string          `json:"sales_id"`
	ArtistID        string          `json:"artist_id"`
	Channel         string          `json:"channel"`
	OrderStatus     string          `json:"order_status"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Note            string          `json:"note"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Deposit         decimal.Decimal `json:"deposit"`

	Items []OrderItem `json:"items,omitempty"`
}

func OrderFromRow(row []string) Order {
	return Order{
		OrderID:         cellAt(row, OrderColOrderID),
		CreatedAt:       cellAt(row, OrderColCreatedAt),
		CustomerID:      cellAt(row, OrderColCustomerID),
		AppointmentDate: cellAt(row, OrderColAppointmentDate),
		AppointmentTime: cellAt(row, OrderColAppointmentTime),
		SalesID:         cellAt(row, OrderColSalesID),
		ArtistID:        cellAt(row, OrderColArtistID),
		Channel:         cellAt(row, OrderColChannel),
		OrderStatus:     cellAt(row, OrderColOrderStatus),
		TotalPrice:      utils.ParseCurrency(cellAt(row, OrderColTotalPrice)),
		Note:            cellAt(row, OrderColNote),
		TotalPaid:       utils.ParseCurrency(cellAt(row, OrderColTotalPaid)),
		Deposit:         utils.ParseCurrency(cellAt(row, OrderColDeposit)),
	}
}

func (o *Order) ToRow() []string {
	return []string{
		o.OrderID,
		o.CreatedAt,
		o.CustomerID,
		o.AppointmentDate,
		o.AppointmentTime,
		o.SalesID,
		o.ArtistID,
		o.Channel,
		o.OrderStatus,
		o.TotalPrice.String(),
		o.Note,
		o.TotalPaid.String(),
		o.Deposit.String(),
	}
}

// OrderItem is one priced line of an order. Name and price are snapshots
// taken from the master item at attach time.
type OrderItem struct {
	OrderItemID string          `json:"order_item_id"`
	OrderID     string          `json:"order_id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	ListPrice   decimal.Decimal `json:"list_price"`
	IsUpsell    bool            `json:"is_upsell"`
}

func OrderItemFromRow(row []string) OrderItem {
	return OrderItem{
		OrderItemID: cellAt(row, 1),
		OrderID:     cellAt(row, 2),
		ItemCode:    cellAt(row, 3),
		ItemName:    cellAt(row, 4),
		ListPrice:   utils.ParseCurrency(cellAt(row, 5)),
		IsUpsell:    utils.IsTruthy(cellAt(row, 6)),
	}
}

func (i *OrderItem) ToRow() []string {
	return []string{
		i.OrderItemID,
		i.OrderID,
		i.ItemCode,
		i.ItemName,
		i.ListPrice.String(),
		utils.FormatBool(i.IsUpsell),
	}
}

// MasterItem is a catalog entry. Read-only from the order engine; price
// changes here never touch already attached items.
type MasterItem struct {
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	Category  string          `json:"category"`
	ListPrice decimal.Decimal `json:"list_price"`
	IsFree    bool            `json:"is_free"`
}

func MasterItemFromRow(row []string) MasterItem {
	return MasterItem{
		ItemCode:  cellAt(row, 1),
		ItemName:  cellAt(row, 2),
		Category:  cellAt(row, 3),
		ListPrice: utils.ParseCurrency(cellAt(row, 4)),
		IsFree:    utils.IsTruthy(cellAt(row, 5)),
	}
}

// Staff is reference data for the sales/artist selection lists.
type Staff struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

func StaffFromRow(row []string) Staff {
	return Staff{
		StaffID:   cellAt(row, 1),
		StaffName: cellAt(row, 2),
		Role:      cellAt(row, 3),
		IsActive:  utils.IsTruthy(cellAt(row, 4)),
	}
}

// Customer is a studio customer. DriveFolderID and FolderURL stay empty
// until the first media-folder access provisions them.
type Customer struct {
	CustomerID     string `json:"customer_id"`
	CreatedAt      string `json:"created_at"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	ContactChannel string `json:"contact_channel"`
	Note           string `json:"note"`
	DriveFolderID  string `json:"drive_folder_id,omitempty"`
	FolderURL      string `json:"folder_url,omitempty"`
}

func CustomerFromRow(row []string) Customer {
	return Customer{
		CustomerID:     cellAt(row, 1),
		CreatedAt:      cellAt(row, 2),
		FullName:       cellAt(row, 3),
		Phone:          utils.PhoneString(cellAt(row, 4)),
		ContactChannel: cellAt(row, 5),
		Note:           cellAt(row, 6),
		DriveFolderID:  cellAt(row, 7),
		FolderURL:      cellAt(row, 8),
	}
}

func (c *Customer) ToRow() []string {
	return []string{
		c.CustomerID,
		c.CreatedAt,
		c.FullName,
		c.Phone,
		c.ContactChannel,
		c.Note,
		c.DriveFolderID,
		c.FolderURL,
	}
}

// Payment is one payment event against an order. Append-only; NetAmount is
// the amount after the method fee deduction.
type Payment struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	PaymentDate   string          `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	PaymentMethod string          `json:"payment_method"`
	Note          string          `json:"note"`
}

func PaymentFromRow(row []string) Payment {
	return Payment{
		PaymentID:     cellAt(row, 1),
		OrderID:       cellAt(row, 2),
		PaymentDate:   cellAt(row, 3),
		Amount:        utils.ParseCurrency(cellAt(row, 4)),
		NetAmount:     utils.ParseCurrency(cellAt(row, 5)),
		PaymentMethod: cellAt(row, 6),
		Note:          cellAt(row, 7),
	}
}

func (p *Payment) ToRow() []string {
	return []string{
		p.PaymentID,
		p.OrderID,
		p.PaymentDate,
		p.Amount.String(),
		p.NetAmount.String(),
		p.PaymentMethod,
		p.Note,
	}
}

// ChatRecord is a daily marketing input used only by the metrics layer.
type ChatRecord struct {
	ChatDate  string `json:"chat_date"`
	ChatCount int    `json:"chat_count"`
	Note      string `json:"note"`
}

func ChatRecordFromRow(row []string) ChatRecord {
	return ChatRecord{
		ChatDate:  cellAt(row, 1),
		ChatCount: int(utils.ParseCurrency(cellAt(row, 2)).IntPart()),
		Note:      cellAt(row, 3),
	}
}

func (c *ChatRecord) ToRow() []string {
	return []string{c.ChatDate, decimal.NewFromInt(int64(c.ChatCount)).String(), c.Note}
}

// AdBudget is a weekly ad-spend input used only by the metrics layer.
type AdBudget struct {
	WeekStartDate string          `json:"week_start_date"`
	WeekEndDate   string          `json:"week_end_date"`
	BudgetAmount  decimal.Decimal `json:"budget_amount"`
	Platform      string          `json:"platform"`
	Note          string          `json:"note"`
}

func AdBudgetFromRow(row []string) AdBudget {
	return AdBudget{
		WeekStartDate: cellAt(row, 1),
		WeekEndDate:   cellAt(row, 2),
		BudgetAmount:  utils.ParseCurrency(cellAt(row, 3)),
		Platform:      cellAt(row, 4),
		Note:          cellAt(row, 5),
	}
}

func (a *AdBudget) ToRow() []string {
	return []string{a.WeekStartDate, a.WeekEndDate, a.BudgetAmount.String(), a.Platform, a.Note}
}
