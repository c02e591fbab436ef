package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/pkg/utils"
)

// Upsert outcomes reported back to the caller.
const (
	UpsertAdded   = "added"
	UpsertUpdated = "updated"
)

// ChatRecordRequest is one day's chat count.
type ChatRecordRequest struct {
	ChatDate  string `json:"chat_date" binding:"required"`
	ChatCount int    `json:"chat_count"`
	Note      string `json:"note"`
}

// AdBudgetRequest is one week's spend on one platform.
type AdBudgetRequest struct {
	WeekStartDate string          `json:"week_start_date" binding:"required"`
	WeekEndDate   string          `json:"week_end_date" binding:"required"`
	BudgetAmount  decimal.Decimal `json:"budget_amount"`
	Platform      string          `json:"platform" binding:"required"`
	Note          string          `json:"note"`
}

// --- MarketingService Interface ---

type MarketingService interface {
	UpsertChatRecord(ctx context.Context, req ChatRecordRequest) (string, error)
	GetChatRecords(ctx context.Context) ([]models.ChatRecord, error)
	UpsertAdBudget(ctx context.Context, req AdBudgetRequest) (string, error)
	GetAdBudgets(ctx context.Context) ([]models.AdBudget, error)
}

// --- marketingService Implementation ---

type marketingService struct {
	marketingRepo repositories.MarketingRepository
}

// NewMarketingService creates a new instance of MarketingService.
func NewMarketingService(mr repositories.MarketingRepository) MarketingService {
	return &marketingService{marketingRepo: mr}
}

func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// UpsertChatRecord updates the existing row for the date when one exists,
// otherwise appends a new row. One row per day.
func (s *marketingService) UpsertChatRecord(ctx context.Context, req ChatRecordRequest) (string, error) {
	if !validDate(req.ChatDate) {
		return "", newValidationError(fmt.Sprintf("invalid chat_date %q (expected YYYY-MM-DD)", req.ChatDate))
	}
	if req.ChatCount < 0 {
		return "", newValidationError("chat_count must not be negative")
	}

	row, err := s.marketingRepo.FindChatRow(ctx, req.ChatDate)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to look up chat record %q: %w", req.ChatDate, err)
	}

	if row > 0 {
		count := decimal.NewFromInt(int64(req.ChatCount)).String()
		if err := s.marketingRepo.UpdateChatCell(ctx, row, models.ChatColCount, count); err != nil {
			return "", fmt.Errorf("failed to update chat record %q: %w", req.ChatDate, err)
		}
		if err := s.marketingRepo.UpdateChatCell(ctx, row, models.ChatColNote, req.Note); err != nil {
			return "", fmt.Errorf("failed to update chat record %q: %w", req.ChatDate, err)
		}
		utils.LogInfo("Chat record updated", map[string]interface{}{"chat_date": req.ChatDate, "chat_count": req.ChatCount})
		return UpsertUpdated, nil
	}

	record := models.ChatRecord{ChatDate: req.ChatDate, ChatCount: req.ChatCount, Note: req.Note}
	if err := s.marketingRepo.CreateChat(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to add chat record %q: %w", req.ChatDate, err)
	}
	utils.LogInfo("Chat record added", map[string]interface{}{"chat_date": req.ChatDate, "chat_count": req.ChatCount})
	return UpsertAdded, nil
}

func (s *marketingService) GetChatRecords(ctx context.Context) ([]models.ChatRecord, error) {
	chats, err := s.marketingRepo.GetChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat records: %w", err)
	}
	return chats, nil
}

// UpsertAdBudget updates the row matching week_start_date and platform when
// one exists, otherwise appends. One row per platform per week.
func (s *marketingService) UpsertAdBudget(ctx context.Context, req AdBudgetRequest) (string, error) {
	var violations []string
	if !validDate(req.WeekStartDate) {
		violations = append(violations, fmt.Sprintf("invalid week_start_date %q (expected YYYY-MM-DD)", req.WeekStartDate))
	}
	if !validDate(req.WeekEndDate) {
		violations = append(violations, fmt.Sprintf("invalid week_end_date %q (expected YYYY-MM-DD)", req.WeekEndDate))
	}
	if utils.IsEmpty(req.Platform) {
		violations = append(violations, "platform is required")
	}
	if req.BudgetAmount.IsNegative() {
		violations = append(violations, "budget_amount must not be negative")
	}
	if len(violations) > 0 {
		return "", &ValidationError{Violations: violations}
	}

	row, err := s.marketingRepo.FindAdBudgetRow(ctx, req.WeekStartDate, req.Platform)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to look up ads budget %s/%s: %w", req.WeekStartDate, req.Platform, err)
	}

	if row > 0 {
		writes := []struct {
			col   int
			value string
		}{
			{models.AdBudgetColWeekEnd, req.WeekEndDate},
			{models.AdBudgetColAmount, req.BudgetAmount.String()},
			{models.AdBudgetColPlatform, req.Platform},
			{models.AdBudgetColNote, req.Note},
		}
		for _, w := range writes {
			if err := s.marketingRepo.UpdateAdBudgetCell(ctx, row, w.col, w.value); err != nil {
				return "", fmt.Errorf("failed to update ads budget %s/%s: %w", req.WeekStartDate, req.Platform, err)
			}
		}
		utils.LogInfo("Ads budget updated", map[string]interface{}{"week_start_date": req.WeekStartDate, "platform": req.Platform})
		return UpsertUpdated, nil
	}

	budget := models.AdBudget{
		WeekStartDate: req.WeekStartDate,
		WeekEndDate:   req.WeekEndDate,
		BudgetAmount:  req.BudgetAmount,
		Platform:      req.Platform,
		Note:          req.Note,
	}
	if err := s.marketingRepo.CreateAdBudget(ctx, &budget); err != nil {
		return "", fmt.Errorf("failed to add ads budget %s/%s: %w", req.WeekStartDate, req.Platform, err)
	}
	utils.LogInfo("Ads budget added", map[string]interface{}{"week_start_date": req.WeekStartDate, "platform": req.Platform})
	return UpsertAdded, nil
}

func (s *marketingService) GetAdBudgets(ctx context.Context) ([]models.AdBudget, error) {
	budgets, err := s.marketingRepo.GetAdBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get ads budgets: %w", err)
	}
	return budgets, nil
}
