package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// MasterItemRepository reads the service/product catalog. The order engine
// never writes here; catalog upkeep happens directly in the sheet.
type MasterItemRepository interface {
	GetMasterItems(ctx context.Context) ([]models.MasterItem, error)
	GetByCode(ctx context.Context, itemCode string) (*models.MasterItem, error)
}

type masterItemRepository struct {
	store rowstore.Store
}

// NewMasterItemRepository creates a new instance of MasterItemRepository.
func NewMasterItemRepository(store rowstore.Store) MasterItemRepository {
	return &masterItemRepository{store: store}
}

func (r *masterItemRepository) GetMasterItems(ctx context.Context) ([]models.MasterItem, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetMasterItem)
	if err != nil {
		return nil, fmt.Errorf("%w: listing master items: %v", ErrStoreError, err)
	}
	items := make([]models.MasterItem, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		items = append(items, models.MasterItemFromRow(rows[i]))
	}
	return items, nil
}

func (r *masterItemRepository) GetByCode(ctx context.Context, itemCode string) (*models.MasterItem, error) {
	items, err := r.GetMasterItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ItemCode == itemCode {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}
