package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// defaultWindowDays is the window used when the caller supplies no dates.
const defaultWindowDays = 30

// MetricsHandler holds the metrics service.
type MetricsHandler struct {
	metricsService services.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(ms services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: ms}
}

// parseWindow reads start_date and end_date query params (YYYY-MM-DD).
// Defaults to the last 30 days ending today.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -defaultWindowDays)
	end := now

	if raw := c.Query("start_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q (expected YYYY-MM-DD)", raw)
		}
		start = d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q (expected YYYY-MM-DD)", raw)
		}
		end = d
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date is before start_date")
	}
	return start, end, nil
}

func respondMetricsError(c *gin.Context, err error, action string) {
	if errors.Is(err, repositories.ErrStoreError) {
		utils.LogError(err, action+": row store unavailable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
		return
	}
	utils.LogError(err, action+": unexpected error")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
}

// GetDashboardSummary computes every KPI for the requested window.
func (h *MetricsHandler) GetDashboardSummary(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date window.", err.Error()))
		return
	}

	summary, err := h.metricsService.GetDashboardSummary(c.Request.Context(), start, end)
	if err != nil {
		respondMetricsError(c, err, "compute dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSalesPerformance aggregates the window's orders per salesperson.
func (h *MetricsHandler) GetSalesPerformance(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date window.", err.Error()))
		return
	}

	performance, err := h.metricsService.GetSalesPerformance(c.Request.Context(), start, end)
	if err != nil {
		respondMetricsError(c, err, "compute sales performance")
		return
	}
	c.JSON(http.StatusOK, performance)
}
