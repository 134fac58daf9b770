package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotOrganizationOwner = errors.New("only an admin can update the organization's details")
	ErrRoleNameRequired     = errors.New("role name is required")
	ErrRoleExists           = errors.New("role already exists")
	ErrRoleNotFound         = errors.New("role not found in organization")
	ErrDepartmentRequired   = errors.New("name is required")
	ErrDepartmentNotFound   = errors.New("department not found")
)

// OrganizationService handles organization, custom role label, and
// department management.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// GetOrganization loads an organization with its creator, members, and
// departments.
func (s *OrganizationService) GetOrganization(orgID uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByIDWithRelations(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// UpdateOrganization renames the organization. Ownership gates on the
// creator reference, not the role field; the admin-role middleware check
// runs separately, and the stricter of the two wins.
func (s *OrganizationService) UpdateOrganization(actor models.User, orgID uint64, name string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if org.CreatedByID != actor.ID {
		return nil, ErrNotOrganizationOwner
	}

	if name != "" {
		org.Name = name
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// ListMembers lists the organization's users.
func (s *OrganizationService) ListMembers(orgID uint64) ([]models.User, error) {
	members, err := s.userRepo.ListByOrganization(orgID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetRoles returns the organization's custom role labels.
func (s *OrganizationService) GetRoles(orgID uint64) ([]string, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org.RoleNames, nil
}

// AddRole appends a custom role label. Labels are display/management data
// only; user role updates ignore them.
func (s *OrganizationService) AddRole(orgID uint64, label string) (*models.Organization, error) {
	if label == "" {
		return nil, ErrRoleNameRequired
	}

	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	for _, existing := range org.RoleNames {
		if existing == label {
			return nil, ErrRoleExists
		}
	}

	org.RoleNames = append(org.RoleNames, label)
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to add role: %w", err)
	}

	return org, nil
}

// RemoveRole removes a custom role label and resets users holding it back
// to member.
func (s *OrganizationService) RemoveRole(orgID uint64, label string) error {
	if label == "" {
		return ErrRoleNameRequired
	}

	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	kept := org.RoleNames[:0]
	found := false
	for _, existing := range org.RoleNames {
		if existing == label {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return ErrRoleNotFound
	}

	org.RoleNames = kept
	if err := s.orgRepo.Update(org); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}

	if err := s.orgRepo.ResetRoleToMember(orgID, label); err != nil {
		return fmt.Errorf("failed to reset member roles: %w", err)
	}

	return nil
}

// ListDepartments lists the organization's departments.
func (s *OrganizationService) ListDepartments(orgID uint64) ([]models.Department, error) {
	org, err := s.orgRepo.FindByIDWithRelations(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org.Departments, nil
}

// AddDepartment appends a department to the organization.
func (s *OrganizationService) AddDepartment(orgID uint64, name string, creatorID uint64) (*models.Department, error) {
	if name == "" {
		return nil, ErrDepartmentRequired
	}

	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	dept := &models.Department{
		OrgID:       orgID,
		Name:        name,
		CreatedByID: creatorID,
	}
	if err := s.orgRepo.AddDepartment(dept); err != nil {
		return nil, fmt.Errorf("failed to add department: %w", err)
	}

	return dept, nil
}

// RemoveDepartment deletes a department from the organization.
func (s *OrganizationService) RemoveDepartment(orgID, departmentID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if err := s.orgRepo.RemoveDepartment(orgID, departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to remove department: %w", err)
	}

	return nil
}
