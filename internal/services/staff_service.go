package services

import (
	"context"
	"fmt"
	"strings"

	"ct_studio_backend/internal/models"
	"ct_studio_backend/internal/repositories"
)

// Staff roles used by the selection lists.
const (
	RoleSales  = "sales"
	RoleArtist = "artist"
)

// StaffService reads the staff reference sheet for selection lists.
type StaffService interface {
	GetStaff(ctx context.Context, role string, activeOnly bool) ([]models.Staff, error)
}

type staffService struct {
	staffRepo repositories.StaffRepository
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository) StaffService {
	return &staffService{staffRepo: sr}
}

// GetStaff returns staff filtered by role (empty role means all) and,
// optionally, only active members.
func (s *staffService) GetStaff(ctx context.Context, role string, activeOnly bool) ([]models.Staff, error) {
	staff, err := s.staffRepo.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	filtered := make([]models.Staff, 0, len(staff))
	for _, member := range staff {
		if role != "" && !strings.EqualFold(member.Role, role) {
			continue
		}
		if activeOnly && !member.IsActive {
			continue
		}
		filtered = append(filtered, member)
	}
	return filtered, nil
}
