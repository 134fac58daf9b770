package models

import "time"

type Board struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	CreatedByID uint64 `gorm:"not null" json:"created_by_id"`
	OrgID       uint64 `gorm:"not null;index" json:"org_id"`

	// DepartmentID is required but not validated against the organization's
	// department list at write time.
	DepartmentID uint64 `gorm:"not null" json:"department_id"`

	Order int `gorm:"column:display_order;not null;default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Tasks     []Task `gorm:"foreignKey:BoardID" json:"tasks,omitempty"`
}
