package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/objectstore"
	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/pkg/utils"
)

// ErrCustomerNotFound is returned when a customer id has no row.
var ErrCustomerNotFound = errors.New("customer not found")

// CreateCustomerRequest is used for creating a new customer record.
type CreateCustomerRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone"`
	ContactChannel string `json:"contact_channel"`
	Note           string `json:"note"`
}

// CustomerUpdate holds the editable customer fields; nil means unchanged.
type CustomerUpdate struct {
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	ContactChannel *string `json:"contact_channel"`
	Note           *string `json:"note"`
}

// --- CustomerService Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (string, error)
	GetCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, update CustomerUpdate) error
	DeleteCustomer(ctx context.Context, customerID string) error

	EnsureMediaFolder(ctx context.Context, customerID string) (folderID, folderURL string, err error)
	UploadAsset(ctx context.Context, customerID, filename, mimeType string, content []byte) (*objectstore.File, error)
	ListAssets(ctx context.Context, customerID string) ([]objectstore.File, error)
	DeleteAsset(ctx context.Context, fileID string) error
}

// --- customerService Implementation ---

type customerService struct {
	customerRepo   repositories.CustomerRepository
	objects        objectstore.Store
	rootFolderName string
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(cr repositories.CustomerRepository, objects objectstore.Store, rootFolderName string) CustomerService {
	return &customerService{customerRepo: cr, objects: objects, rootFolderName: rootFolderName}
}

// newCustomerID derives the id from the phone number when one exists, so
// re-entering the same customer from a new order resolves to the same id.
func newCustomerID(phone string) string {
	phone = utils.PhoneString(phone)
	if phone != "" {
		return "CUST-" + phone
	}
	return "CUST-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (string, error) {
	if utils.IsEmpty(req.FullName) {
		return "", newValidationError("full_name is required")
	}

	customer := models.Customer{
		CustomerID:     newCustomerID(req.Phone),
		CreatedAt:      time.Now().Format(time.RFC3339),
		FullName:       strings.TrimSpace(req.FullName),
		Phone:          utils.PhoneString(req.Phone),
		ContactChannel: req.ContactChannel,
		Note:           req.Note,
	}

	if err := s.customerRepo.CreateCustomer(ctx, &customer); err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	utils.LogInfo("Customer created", map[string]interface{}{"customer_id": customer.CustomerID})
	return customer.CustomerID, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customerRepo.GetCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, _, err := s.customerRepo.FindCustomerRow(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to get customer %q: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, update CustomerUpdate) error {
	_, row, err := s.customerRepo.FindCustomerRow(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrCustomerNotFound, customerID)
		}
		return fmt.Errorf("failed to locate customer %q: %w", customerID, err)
	}

	writes := []struct {
		set   bool
		col   int
		value string
	}{
		{update.FullName != nil, models.CustomerColFullName, deref(update.FullName)},
		{update.Phone != nil, models.CustomerColPhone, utils.PhoneString(deref(update.Phone))},
		{update.ContactChannel != nil, models.CustomerColContactChannel, deref(update.ContactChannel)},
		{update.Note != nil, models.CustomerColNote, deref(update.Note)},
	}
	for _, w := range writes {
		if !w.set {
			continue
		}
		if err := s.customerRepo.UpdateCustomerCell(ctx, row, w.col, w.value); err != nil {
			return fmt.Errorf("failed to update customer %q: %w", customerID, err)
		}
	}

	utils.LogInfo("Customer updated", map[string]interface{}{"customer_id": customerID})
	return nil
}

// DeleteCustomer removes the customer row. Historical orders keep their
// customer_id and go dangling; there is no cascade.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	_, row, err := s.customerRepo.FindCustomerRow(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrCustomerNotFound, customerID)
		}
		return fmt.Errorf("failed to locate customer %q: %w", customerID, err)
	}
	if err := s.customerRepo.DeleteCustomerRow(ctx, row); err != nil {
		return fmt.Errorf("failed to delete customer %q: %w", customerID, err)
	}
	utils.LogInfo("Customer deleted", map[string]interface{}{"customer_id": customerID})
	return nil
}

// EnsureMediaFolder lazily provisions the customer's media folder under the
// studio root and persists the folder id and URL onto the customer row on
// first access.
func (s *customerService) EnsureMediaFolder(ctx context.Context, customerID string) (string, string, error) {
	customer, row, err := s.customerRepo.FindCustomerRow(ctx, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", fmt.Errorf("%w: %q", ErrCustomerNotFound, customerID)
		}
		return "", "", fmt.Errorf("failed to locate customer %q: %w", customerID, err)
	}

	if customer.DriveFolderID != "" {
		return customer.DriveFolderID, customer.FolderURL, nil
	}

	rootID, _, err := s.objects.FindOrCreateFolder(ctx, s.rootFolderName, "")
	if err != nil {
		return "", "", fmt.Errorf("failed to access root media folder: %w", err)
	}

	folderName := fmt.Sprintf("%s - %s", customer.CustomerID, customer.FullName)
	folderID, folderURL, err := s.objects.FindOrCreateFolder(ctx, folderName, rootID)
	if err != nil {
		return "", "", fmt.Errorf("failed to provision media folder for %q: %w", customerID, err)
	}

	if err := s.customerRepo.UpdateCustomerCell(ctx, row, models.CustomerColDriveFolderID, folderID); err != nil {
		return "", "", fmt.Errorf("failed to persist folder id for %q: %w", customerID, err)
	}
	if err := s.customerRepo.UpdateCustomerCell(ctx, row, models.CustomerColFolderURL, folderURL); err != nil {
		return "", "", fmt.Errorf("failed to persist folder url for %q: %w", customerID, err)
	}

	utils.LogInfo("Media folder provisioned", map[string]interface{}{"customer_id": customerID, "folder_id": folderID})
	return folderID, folderURL, nil
}

func (s *customerService) UploadAsset(ctx context.Context, customerID, filename, mimeType string, content []byte) (*objectstore.File, error) {
	folderID, _, err := s.EnsureMediaFolder(ctx, customerID)
	if err != nil {
		return nil, err
	}
	file, err := s.objects.Upload(ctx, content, filename, folderID, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %q for customer %q: %w", filename, customerID, err)
	}
	utils.LogInfo("Asset uploaded", map[string]interface{}{"customer_id": customerID, "file_id": file.ID})
	return file, nil
}

func (s *customerService) ListAssets(ctx context.Context, customerID string) ([]objectstore.File, error) {
	folderID, _, err := s.EnsureMediaFolder(ctx, customerID)
	if err != nil {
		return nil, err
	}
	files, err := s.objects.List(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets of customer %q: %w", customerID, err)
	}
	return files, nil
}

func (s *customerService) DeleteAsset(ctx context.Context, fileID string) error {
	if err := s.objects.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete asset %q: %w", fileID, err)
	}
	utils.LogInfo("Asset deleted", map[string]interface{}{"file_id": fileID})
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
