package handlers

import (
	"errors"
	"net/http"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// GetStaff lists staff, optionally filtered by ?role= and ?active_only=true.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	role := c.Query("role")
	activeOnly := c.Query("active_only") == "true"

	staff, err := h.staffService.GetStaff(c.Request.Context(), role, activeOnly)
	if err != nil {
		if errors.Is(err, repositories.ErrStoreError) {
			utils.LogError(err, "GetStaff: row store unavailable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
			return
		}
		utils.LogError(err, "GetStaff: unexpected error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list staff.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staff)
}
