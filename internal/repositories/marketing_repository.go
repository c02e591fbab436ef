package repositories

import (
	"context"
	"fmt"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/rowstore"
)

// MarketingRepository covers the chats and ads_budget input sheets.
type MarketingRepository interface {
	GetChats(ctx context.Context) ([]models.ChatRecord, error)
	FindChatRow(ctx context.Context, chatDate string) (int, error)
	CreateChat(ctx context.Context, chat *models.ChatRecord) error
	UpdateChatCell(ctx context.Context, row, col int, value string) error

	GetAdBudgets(ctx context.Context) ([]models.AdBudget, error)
	FindAdBudgetRow(ctx context.Context, weekStartDate, platform string) (int, error)
	CreateAdBudget(ctx context.Context, budget *models.AdBudget) error
	UpdateAdBudgetCell(ctx context.Context, row, col int, value string) error
}

type marketingRepository struct {
	store rowstore.Store
}

// NewMarketingRepository creates a new instance of MarketingRepository.
func NewMarketingRepository(store rowstore.Store) MarketingRepository {
	return &marketingRepository{store: store}
}

func (r *marketingRepository) GetChats(ctx context.Context) ([]models.ChatRecord, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetChats)
	if err != nil {
		return nil, fmt.Errorf("%w: listing chats: %v", ErrStoreError, err)
	}
	chats := make([]models.ChatRecord, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		chats = append(chats, models.ChatRecordFromRow(rows[i]))
	}
	return chats, nil
}

func (r *marketingRepository) FindChatRow(ctx context.Context, chatDate string) (int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetChats)
	if err != nil {
		return 0, fmt.Errorf("%w: listing chats: %v", ErrStoreError, err)
	}
	idx := findRowIndex(rows, 1, chatDate)
	if idx == 0 {
		return 0, ErrNotFound
	}
	return idx, nil
}

func (r *marketingRepository) CreateChat(ctx context.Context, chat *models.ChatRecord) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetChats, chat.ToRow()); err != nil {
		return fmt.Errorf("%w: appending chat record %s: %v", ErrStoreError, chat.ChatDate, err)
	}
	return nil
}

func (r *marketingRepository) UpdateChatCell(ctx context.Context, row, col int, value string) error {
	if err := r.store.UpdateCell(ctx, rowstore.SheetChats, row, col, value); err != nil {
		return fmt.Errorf("%w: updating chats cell (%d,%d): %v", ErrStoreError, row, col, err)
	}
	return nil
}

func (r *marketingRepository) GetAdBudgets(ctx context.Context) ([]models.AdBudget, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetAdsBudget)
	if err != nil {
		return nil, fmt.Errorf("%w: listing ads budget: %v", ErrStoreError, err)
	}
	budgets := make([]models.AdBudget, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		budgets = append(budgets, models.AdBudgetFromRow(rows[i]))
	}
	return budgets, nil
}

func (r *marketingRepository) FindAdBudgetRow(ctx context.Context, weekStartDate, platform string) (int, error) {
	rows, err := r.store.ListRows(ctx, rowstore.SheetAdsBudget)
	if err != nil {
		return 0, fmt.Errorf("%w: listing ads budget: %v", ErrStoreError, err)
	}
	// Keyed by week + platform: one budget line per platform per week.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) >= 4 && row[0] == weekStartDate && row[3] == platform {
			return i + 1, nil
		}
	}
	return 0, ErrNotFound
}

func (r *marketingRepository) CreateAdBudget(ctx context.Context, budget *models.AdBudget) error {
	if err := r.store.AppendRow(ctx, rowstore.SheetAdsBudget, budget.ToRow()); err != nil {
		return fmt.Errorf("%w: appending ads budget %s/%s: %v", ErrStoreError, budget.WeekStartDate, budget.Platform, err)
	}
	return nil
}

func (r *marketingRepository) UpdateAdBudgetCell(ctx context.Context, row, col int, value string) error {
	if err := r.store.UpdateCell(ctx, rowstore.SheetAdsBudget, row, col, value); err != nil {
		return fmt.Errorf("%w: updating ads_budget cell (%d,%d): %v", ErrStoreError, row, col, err)
	}
	return nil
}
