package dto

import (
	"time"

	"github.com/harukimoto/board-management-api/internal/models"
)

// DepartmentDTO represents a department in API responses
type DepartmentDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	CreatedByID uint64    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	CreatedByID uint64          `json:"created_by_id"`
	CreatedBy   *UserDTO        `json:"created_by,omitempty"`
	Members     []UserDTO       `json:"members,omitempty"`
	RoleNames   []string        `json:"role_names"`
	Departments []DepartmentDTO `json:"departments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToDepartmentDTO converts a Department model to DepartmentDTO
func ToDepartmentDTO(dept models.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:          dept.ID,
		Name:        dept.Name,
		CreatedByID: dept.CreatedByID,
		CreatedAt:   dept.CreatedAt,
	}
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	dto := OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		CreatedByID: org.CreatedByID,
		RoleNames:   org.RoleNames,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
	if dto.RoleNames == nil {
		dto.RoleNames = []string{}
	}

	if org.CreatedBy.ID != 0 {
		creator := ToUserDTO(org.CreatedBy)
		dto.CreatedBy = &creator
	}

	if len(org.Members) > 0 {
		dto.Members = make([]UserDTO, len(org.Members))
		for i, member := range org.Members {
			dto.Members[i] = ToUserDTO(member)
		}
	}

	dto.Departments = make([]DepartmentDTO, len(org.Departments))
	for i, dept := range org.Departments {
		dto.Departments[i] = ToDepartmentDTO(dept)
	}

	return dto
}
