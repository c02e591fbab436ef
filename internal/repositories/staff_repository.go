package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// StaffRepository reads the staff reference sheet.
type StaffRepository interface {
	GetStaff(ctx context.Context) ([]models.Staff, error)
}

type staffRepository struct {
	store rowstore.Store
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(store rowstore.Store) StaffRepository {
	return &staffRepository{store: store}
}

func (r *staffRepository) GetStaff(ctx context.Context) ([]models.Staff, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetStaff)
	if err != nil {
		return nil, fmt.Errorf("%w: listing staff: %v", ErrStoreError, err)
	}
	staff := make([]models.Staff, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		staff = append(staff, models.StaffFromRow(rows[i]))
	}
	return staff, nil
}
