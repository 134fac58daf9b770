package models

import (
	"time"

	"gorm.io/datatypes"
)

type Organization struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	CreatedByID uint64 `gorm:"not null" json:"created_by_id"`

	// RoleNames holds organization-defined custom role labels. These are
	// display/management labels only; user role updates validate against
	// FixedRoles, not this list.
	RoleNames datatypes.JSONSlice[string] `json:"role_names"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy   User         `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Members     []User       `gorm:"foreignKey:OrgID" json:"members,omitempty"`
	Departments []Department `gorm:"foreignKey:OrgID" json:"departments,omitempty"`
}

// Department is a named grouping inside an organization, used to scope boards.
type Department struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OrgID       uint64    `gorm:"not null;index" json:"org_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	CreatedBy User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
