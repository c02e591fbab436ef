package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func respondPaymentError(c *gin.Context, err error, action string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Payment data failed validation.", vErr.Error()))
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
	case errors.Is(err, repositories.ErrStoreError):
		utils.LogError(err, action+": row store unavailable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
	default:
		utils.LogError(err, action+": unexpected error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// RecordPayment appends one payment for an order.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	paymentID, err := h.paymentService.RecordPayment(c.Request.Context(), req)
	if err != nil {
		respondPaymentError(c, err, "record payment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_id": paymentID})
}

// GetPaymentSummary returns the payment aggregation for one order.
func (h *PaymentHandler) GetPaymentSummary(c *gin.Context) {
	summary, err := h.paymentService.GetPaymentSummary(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondPaymentError(c, err, "get payment summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateOrderPaymentInfo writes the price and paid cells back onto the
// order row.
func (h *PaymentHandler) UpdateOrderPaymentInfo(c *gin.Context) {
	var req struct {
		TotalPrice decimal.Decimal `json:"total_price"`
		TotalPaid  decimal.Decimal `json:"total_paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	orderID := c.Param("orderID")
	if err := h.paymentService.UpdateOrderPaymentInfo(c.Request.Context(), orderID, req.TotalPrice, req.TotalPaid); err != nil {
		respondPaymentError(c, err, "update order payment info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "message": "Payment info updated."})
}
