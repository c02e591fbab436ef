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

// PaymentMethodCreditCard3 is the only method that carries a fee; every
// other method passes the gross amount through unchanged.
const PaymentMethodCreditCard3 = "credit_card_3%"

var creditCardNetRate = decimal.RequireFromString("0.97")

// PaymentSummary is the read-side aggregation for one order.
type PaymentSummary struct {
	TotalPrice   decimal.Decimal  `json:"total_price"`
	TotalPaid    decimal.Decimal  `json:"total_paid"`
	Balance      decimal.Decimal  `json:"balance"`
	PaymentCount int              `json:"payment_count"`
	Payments     []models.Payment `json:"payments"`
}

// RecordPaymentRequest is the payload for recording one payment event.
type RecordPaymentRequest struct {
	OrderID       string          `json:"order_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Note          string          `json:"note"`
}

// --- PaymentService Interface ---

type PaymentService interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (string, error)
	TotalPaid(ctx context.Context, orderID string) decimal.Decimal
	GetPaymentSummary(ctx context.Context, orderID string) (*PaymentSummary, error)
	UpdateOrderPaymentInfo(ctx context.Context, orderID string, totalPrice, totalPaid decimal.Decimal) error
}

// CalculateNetAmount returns the amount actually received after the
// method-specific fee deduction.
func CalculateNetAmount(amount decimal.Decimal, paymentMethod string) decimal.Decimal {
	if paymentMethod == PaymentMethodCreditCard3 {
		return amount.Mul(creditCardNetRate)
	}
	return amount
}

// CalculateBalance is the outstanding amount, floored at zero so an
// overpayment never reports a negative balance.
func CalculateBalance(totalPrice, totalPaid decimal.Decimal) decimal.Decimal {
	balance := totalPrice.Sub(totalPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// --- paymentService Implementation ---

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(pr repositories.PaymentRepository, or repositories.OrderRepository) PaymentService {
	return &paymentService{paymentRepo: pr, orderRepo: or}
}

func newPaymentID() string {
	return "PAY-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// RecordPayment appends one payment row. Existing payments are never
// mutated; corrections are new rows with an explanatory note.
func (s *paymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (string, error) {
	if utils.IsEmpty(req.OrderID) {
		return "", newValidationError("order_id is required")
	}

	payment := models.Payment{
		PaymentID:     newPaymentID(),
		OrderID:       req.OrderID,
		PaymentDate:   time.Now().Format(time.RFC3339),
		Amount:        req.Amount,
		NetAmount:     CalculateNetAmount(req.Amount, req.PaymentMethod),
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}

	if err := s.paymentRepo.CreatePayment(ctx, &payment); err != nil {
		return "", fmt.Errorf("failed to record payment for order %q: %w", req.OrderID, err)
	}

	utils.LogInfo("Payment recorded", map[string]interface{}{
		"payment_id": payment.PaymentID,
		"order_id":   payment.OrderID,
		"net_amount": payment.NetAmount.String(),
	})
	return payment.PaymentID, nil
}

// TotalPaid sums net_amount over the order's payments. A read failure
// resolves to zero; payment totals degrade rather than block the order view.
func (s *paymentService) TotalPaid(ctx context.Context, orderID string) decimal.Decimal {
	payments, err := s.paymentRepo.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		utils.LogError(err, "Failed to calculate total paid for order "+orderID)
		return decimal.Zero
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.NetAmount)
	}
	return total
}

func (s *paymentService) GetPaymentSummary(ctx context.Context, orderID string) (*PaymentSummary, error) {
	order, _, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to locate order %q: %w", orderID, err)
	}

	totalPrice := order.TotalPrice
	payments, err := s.paymentRepo.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		// zero-filled summary with the full price outstanding, not an error
		utils.LogError(err, "Failed to load payments for order "+orderID)
		return &PaymentSummary{
			TotalPrice:   totalPrice,
			TotalPaid:    decimal.Zero,
			Balance:      totalPrice,
			PaymentCount: 0,
			Payments:     []models.Payment{},
		}, nil
	}

	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.NetAmount)
	}

	return &PaymentSummary{
		TotalPrice:   totalPrice,
		TotalPaid:    totalPaid,
		Balance:      CalculateBalance(totalPrice, totalPaid),
		PaymentCount: len(payments),
		Payments:     payments,
	}, nil
}

// UpdateOrderPaymentInfo writes the price and paid cells back onto the
// order row so the sheet itself shows current payment state.
func (s *paymentService) UpdateOrderPaymentInfo(ctx context.Context, orderID string, totalPrice, totalPaid decimal.Decimal) error {
	_, row, err := s.orderRepo.FindOrderRow(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("failed to locate order %q: %w", orderID, err)
	}

	if err := s.orderRepo.UpdateOrderCell(ctx, row, models.OrderColTotalPrice, totalPrice.String()); err != nil {
		return fmt.Errorf("failed to write total_price for order %q: %w", orderID, err)
	}
	if err := s.orderRepo.UpdateOrderCell(ctx, row, models.OrderColTotalPaid, totalPaid.String()); err != nil {
		return fmt.Errorf("failed to write total_paid for order %q: %w", orderID, err)
	}

	utils.LogInfo("Order payment info updated", map[string]interface{}{
		"order_id":    orderID,
		"total_price": totalPrice.String(),
		"total_paid":  totalPaid.String(),
	})
	return nil
}
