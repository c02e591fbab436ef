package handlers

import (
	"errors"
	"net/http"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MarketingHandler holds the marketing service.
type MarketingHandler struct {
	marketingService services.MarketingService
}

// NewMarketingHandler creates a new MarketingHandler.
func NewMarketingHandler(ms services.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: ms}
}

func respondMarketingError(c *gin.Context, err error, action string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Marketing data failed validation.", vErr.Error()))
	case errors.Is(err, repositories.ErrStoreError):
		utils.LogError(err, action+": row store unavailable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
	default:
		utils.LogError(err, action+": unexpected error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// UpsertChatRecord adds or updates one day's chat count.
func (h *MarketingHandler) UpsertChatRecord(c *gin.Context) {
	var req services.ChatRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	outcome, err := h.marketingService.UpsertChatRecord(c.Request.Context(), req)
	if err != nil {
		respondMarketingError(c, err, "upsert chat record")
		return
	}
	status := http.StatusOK
	if outcome == services.UpsertAdded {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"chat_date": req.ChatDate, "result": outcome})
}

// GetChatRecords lists the daily chat counts.
func (h *MarketingHandler) GetChatRecords(c *gin.Context) {
	chats, err := h.marketingService.GetChatRecords(c.Request.Context())
	if err != nil {
		respondMarketingError(c, err, "list chat records")
		return
	}
	c.JSON(http.StatusOK, chats)
}

// UpsertAdBudget adds or updates one week's spend on one platform.
func (h *MarketingHandler) UpsertAdBudget(c *gin.Context) {
	var req services.AdBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	outcome, err := h.marketingService.UpsertAdBudget(c.Request.Context(), req)
	if err != nil {
		respondMarketingError(c, err, "upsert ads budget")
		return
	}
	status := http.StatusOK
	if outcome == services.UpsertAdded {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"week_start_date": req.WeekStartDate, "platform": req.Platform, "result": outcome})
}

// GetAdBudgets lists the weekly ad budgets.
func (h *MarketingHandler) GetAdBudgets(c *gin.Context) {
	budgets, err := h.marketingService.GetAdBudgets(c.Request.Context())
	if err != nil {
		respondMarketingError(c, err, "list ads budgets")
		return
	}
	c.JSON(http.StatusOK, budgets)
}
