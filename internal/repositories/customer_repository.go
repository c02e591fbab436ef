package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// CustomerRepository defines the row-store operations for customers.
type CustomerRepository interface {
	GetCustomers(ctx context.Context) ([]models.Customer, error)
	FindCustomerRow(ctx context.Context, customerID string) (*models.Customer, int, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomerCell(ctx context.Context, row, col int, value string) error
	DeleteCustomerRow(ctx context.Context, row int) error
}

type customerRepository struct {
	store rowstore.Store
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(store rowstore.Store) CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetCustomers)
	if err != nil {
		return nil, fmt.Errorf("%w: listing customers: %v", ErrStoreError, err)
	}
	customers := make([]models.Customer, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		customers = append(customers, models.CustomerFromRow(rows[i]))
	}
	return customers, nil
}

func (r *customerRepository) FindCustomerRow(ctx context.Context, customerID string) (*models.Customer, int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetCustomers)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing customers: %v", ErrStoreError, err)
	}
	idx := findRowIndex(rows, 1, customerID)
	if idx == 0 {
		return nil, 0, ErrNotFound
	}
	customer := models.CustomerFromRow(rows[idx-1])
	return &customer, idx, nil
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetCustomers, customer.ToRow()); err != nil {
		return fmt.Errorf("%w: appending customer %s: %v", ErrStoreError, customer.CustomerID, err)
	}
	return nil
}

func (r *customerRepository) UpdateCustomerCell(ctx context.Context, row, col int, value string) error {
	err := r.store.UpdateCell(ctx, rowstore.SheetCustomers, row, col, value)
	if err != nil {
		return fmt.Errorf("%w: updating customers cell (%d,%d): %v", ErrStoreError, row, col, err)
	}
	return nil
}

func (r *customerRepository) DeleteCustomerRow(ctx context.Context, row int) error {
	if err := r.store.DeleteRow(ctx, rowstore.SheetCustomers, row); err != nil {
		return fmt.Errorf("%w: deleting customers row %d: %v", ErrStoreError, row, err)
	}
	return nil
}
