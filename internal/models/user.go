package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleEngineering Role = "Engineering"
	RoleManagement  Role = "Management"
	RoleWarehouse   Role = "Warehouse"
	RoleMember      Role = "member"
)

// FixedRoles is the set of roles accepted by role updates. Organization
// custom role labels are a separate concept and are not listed here.
var FixedRoles = []Role{RoleAdmin, RoleEngineering, RoleManagement, RoleWarehouse, RoleMember}

// IsFixedRole reports whether r is one of the built-in roles.
func IsFixedRole(r Role) bool {
	for _, fixed := range FixedRoles {
		if r == fixed {
			return true
		}
	}
	return false
}

type NotificationFeatures struct {
	TaskManagement      bool `json:"taskManagement"`
	DocumentManagement  bool `json:"documentManagement"`
	Messaging           bool `json:"messaging"`
	ProjectManagement   bool `json:"projectManagement"`
	InventoryManagement bool `json:"inventoryManagement"`
}

type NotificationSettings struct {
	Email     string               `json:"email"`
	IsEnabled bool                 `json:"isEnabled"`
	Features  NotificationFeatures `json:"features"`
}

// DefaultNotificationSettings returns the settings applied to users that
// never configured notifications.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Email:     "",
		IsEnabled: false,
		Features: NotificationFeatures{
			TaskManagement:      true,
			DocumentManagement:  true,
			Messaging:           true,
			ProjectManagement:   true,
			InventoryManagement: true,
		},
	}
}

type User struct {
	ID              uint64  `gorm:"primarykey" json:"id"`
	Name            string  `gorm:"type:varchar(255);not null" json:"name"`
	Username        string  `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Email           string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string  `gorm:"type:varchar(255);not null" json:"-"`
	ProfileImageURL string  `gorm:"type:varchar(512)" json:"profile_image_url"`
	Role            Role    `gorm:"type:varchar(50);not null;default:'member'" json:"role"`
	OrgID           *uint64 `gorm:"index" json:"org_id"`
	DepartmentID    *uint64 `json:"department_id"`

	// Nil means the user never touched notification settings; responses fall
	// back to DefaultNotificationSettings.
	NotificationSettings *datatypes.JSONType[NotificationSettings] `json:"notification_settings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
}
