package repository

import (
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/models"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByIDWithRelations loads an organization with creator, members and departments
func (r *GormOrganizationRepository) FindByIDWithRelations(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.
		Preload("CreatedBy").
		Preload("Members").
		Preload("Departments").
		First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update persists changes to an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// AddDepartment appends a department to an organization
func (r *GormOrganizationRepository) AddDepartment(dept *models.Department) error {
	return r.db.Create(dept).Error
}

// FindDepartment finds a department scoped to an organization
func (r *GormOrganizationRepository) FindDepartment(orgID, departmentID uint64) (*models.Department, error) {
	var dept models.Department
	if err := r.db.Where("org_id = ? AND id = ?", orgID, departmentID).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

// RemoveDepartment deletes a department scoped to an organization
func (r *GormOrganizationRepository) RemoveDepartment(orgID, departmentID uint64) error {
	result := r.db.Where("org_id = ? AND id = ?", orgID, departmentID).Delete(&models.Department{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetRoleToMember downgrades every org user holding the custom label back to member
func (r *GormOrganizationRepository) ResetRoleToMember(orgID uint64, roleLabel string) error {
	return r.db.Model(&models.User{}).
		Where("org_id = ? AND role = ?", orgID, roleLabel).
		Update("role", models.RoleMember).Error
}
