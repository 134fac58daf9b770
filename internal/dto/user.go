package dto

import (
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/utils"
)

// UserDTO represents a user in API responses. The credential digest is never
// part of it.
type UserDTO struct {
	ID                   uint64                      `json:"id"`
	Name                 string                      `json:"name"`
	Username             string                      `json:"username"`
	Email                string                      `json:"email"`
	Role                 models.Role                 `json:"role"`
	OrgID                *uint64                     `json:"org_id"`
	DepartmentID         *uint64                     `json:"department_id,omitempty"`
	ProfileImageURL      string                      `json:"profile_image_url"`
	NotificationSettings models.NotificationSettings `json:"notification_settings"`
}

// AuthResponse is a user projection together with a fresh access token.
type AuthResponse struct {
	UserDTO
	Token string `json:"token"`
}

// UserWithTaskCountsDTO is a member projection with per-status assigned
// task counts.
type UserWithTaskCountsDTO struct {
	UserDTO
	PendingTasks    int64 `json:"pending_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
}

// ToUserDTO converts a User model to UserDTO. Users stored before usernames
// existed get one synthesized from the email local part, and users that
// never configured notifications get the default settings.
func ToUserDTO(user models.User) UserDTO {
	username := user.Username
	if username == "" {
		username = utils.UsernameFromEmail(user.Email)
	}

	settings := models.DefaultNotificationSettings()
	if user.NotificationSettings != nil {
		settings = user.NotificationSettings.Data()
	}

	return UserDTO{
		ID:                   user.ID,
		Name:                 user.Name,
		Username:             username,
		Email:                user.Email,
		Role:                 user.Role,
		OrgID:                user.OrgID,
		DepartmentID:         user.DepartmentID,
		ProfileImageURL:      user.ProfileImageURL,
		NotificationSettings: settings,
	}
}

// ToAuthResponse builds the registration/login projection.
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		UserDTO: ToUserDTO(user),
		Token:   token,
	}
}
