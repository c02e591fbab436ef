package handlers

import (
	"errors"
	"io"
	"net/http"

	"ct_studio_backend/internal/objectstore"
	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/services"
	"ct_studio_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// maxAssetSize caps a single uploaded file at 20 MiB.
const maxAssetSize = 20 << 20

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

func respondCustomerError(c *gin.Context, err error, action string) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Customer data failed validation.", vErr.Error()))
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", err.Error()))
	case errors.Is(err, objectstore.ErrFileNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "File not found.", err.Error()))
	case errors.Is(err, repositories.ErrStoreError):
		utils.LogError(err, action+": row store unavailable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeStoreUnavailable, "Data store is unavailable, please retry.", "Store error"))
	default:
		utils.LogError(err, action+": unexpected error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// CreateCustomer adds a new customer record.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customerID, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondCustomerError(c, err, "create customer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer_id": customerID})
}

// GetCustomers lists every customer.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.customerService.GetCustomers(c.Request.Context())
	if err != nil {
		respondCustomerError(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer record.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondCustomerError(c, err, "get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies a partial edit to the customer row.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var update services.CustomerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	customerID := c.Param("customerID")
	if err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, update); err != nil {
		respondCustomerError(c, err, "update customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer_id": customerID, "message": "Customer updated."})
}

// DeleteCustomer removes the customer row.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("customerID")
	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		respondCustomerError(c, err, "delete customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer_id": customerID, "message": "Customer deleted."})
}

// GetMediaFolder returns the customer's media folder, provisioning it on
// first access.
func (h *CustomerHandler) GetMediaFolder(c *gin.Context) {
	folderID, folderURL, err := h.customerService.EnsureMediaFolder(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondCustomerError(c, err, "provision media folder")
		return
	}
	c.JSON(http.StatusOK, gin.H{"folder_id": folderID, "folder_url": folderURL})
}

// UploadAsset stores one multipart file in the customer's media folder.
func (h *CustomerHandler) UploadAsset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Multipart field 'file' is required.", err.Error()))
		return
	}
	if fileHeader.Size > maxAssetSize {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "File exceeds the 20 MiB upload limit.", ""))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to read uploaded file.", err.Error()))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Failed to read uploaded file.", err.Error()))
		return
	}

	file, err := h.customerService.UploadAsset(c.Request.Context(), c.Param("customerID"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		respondCustomerError(c, err, "upload asset")
		return
	}
	c.JSON(http.StatusCreated, file)
}

// ListAssets lists the files in the customer's media folder, newest first.
func (h *CustomerHandler) ListAssets(c *gin.Context) {
	files, err := h.customerService.ListAssets(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		respondCustomerError(c, err, "list assets")
		return
	}
	c.JSON(http.StatusOK, files)
}

// DeleteAsset removes one file from the media store.
func (h *CustomerHandler) DeleteAsset(c *gin.Context) {
	fileID := c.Param("fileID")
	if err := h.customerService.DeleteAsset(c.Request.Context(), fileID); err != nil {
		respondCustomerError(c, err, "delete asset")
		return
	}
	c.JSON(http.StatusOK, gin.H{"file_id": fileID, "message": "Asset deleted."})
}
