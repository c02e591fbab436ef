package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// PaymentRepository defines the row-store operations for payments.
// Payments are append-only; there is no update or delete.
type PaymentRepository interface {
	GetPayments(ctx context.Context) ([]models.Payment, error)
	GetPaymentsByOrderID(ctx context.Context, orderID string) ([]models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
}

type paymentRepository struct {
	store rowstore.Store
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(store rowstore.Store) PaymentRepository {
	return &paymentRepository{store: store}
}

func (r *paymentRepository) GetPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetPayments)
	if err != nil {
		return nil, fmt.Errorf("%w: listing payments: %v", ErrStoreError, err)
	}
	payments := make([]models.Payment, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		payments = append(payments, models.PaymentFromRow(rows[i]))
	}
	return payments, nil
}

func (r *paymentRepository) GetPaymentsByOrderID(ctx context.Context, orderID string) ([]models.Payment, error) {
	payments, err := r.GetPayments(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.OrderID == orderID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetPayments, payment.ToRow()); err != nil {
		return fmt.Errorf("%w: appending payment %s: %v", ErrStoreError, payment.PaymentID, err)
	}
	return nil
}
