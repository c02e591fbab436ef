package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// respondOrderError maps order service errors onto API error responses.
func respondOrderError(c *gin.Context, err error, action string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Order data failed validation.", strings.Join(vErr.Violations, "; ")))
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
	case errors.Is(err, services.ErrItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Item code not found in catalog.", err.Error()))
	case errors.Is(err, services.ErrOrderItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order item not found.", err.Error()))
	case errors.Is(err, repositories.ErrStoreError):
		utils.LogError(err, action+": row store unavailable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
	default:
		utils.LogError(err, action+": unexpected error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// CreateOrder creates an order together with its items and returns the
// computed total.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderWithItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	orderID, total, err := h.orderService.CreateOrderWithItems(c.Request.Context(), req)
	if err != nil {
		// A non-empty order id means the order row exists but a later step
		// failed; surface the id so the operator can repair instead of retry.
		if orderID != "" {
			utils.LogError(err, "CreateOrder: partial failure for order "+orderID)
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Order "+orderID+" was created but not completed.", err.Error()))
			return
		}
		respondOrderError(c, err, "create order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "total_price": total})
}

// GetOrders lists every order.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context())
	if err != nil {
		respondOrderError(c, err, "list orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order with its items attached.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondOrderError(c, err, "get order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder applies a partial edit to the order row.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var update services.OrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	orderID := c.Param("orderID")
	if err := h.orderService.UpdateOrder(c.Request.Context(), orderID, update); err != nil {
		respondOrderError(c, err, "update order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "message": "Order updated."})
}

// DeleteOrder removes an order and its items.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("orderID")
	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		respondOrderError(c, err, "delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "message": "Order deleted."})
}

// AddOrderItem attaches one catalog item to an existing order.
func (h *OrderHandler) AddOrderItem(c *gin.Context) {
	var req struct {
		ItemCode string `json:"item_code" binding:"required"`
		IsUpsell bool   `json:"is_upsell"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	orderID := c.Param("orderID")
	itemID, err := h.orderService.AddOrderItem(c.Request.Context(), orderID, req.ItemCode, req.IsUpsell)
	if err != nil {
		respondOrderError(c, err, "add order item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_item_id": itemID})
}

// RemoveOrderItem deletes one item row. The order total is not recomputed
// here; call RecomputeTotal afterwards.
func (h *OrderHandler) RemoveOrderItem(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.orderService.RemoveOrderItem(c.Request.Context(), itemID); err != nil {
		respondOrderError(c, err, "remove order item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_item_id": itemID, "message": "Order item removed."})
}

// GetMasterItems lists the service catalog.
func (h *OrderHandler) GetMasterItems(c *gin.Context) {
	items, err := h.orderService.GetMasterItems(c.Request.Context())
	if err != nil {
		respondOrderError(c, err, "list catalog items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// RecomputeTotal re-sums the order's items and writes the total back.
func (h *OrderHandler) RecomputeTotal(c *gin.Context) {
	orderID := c.Param("orderID")
	total, err := h.orderService.UpdateTotal(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err, "recompute order total")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "total_price": total})
}
