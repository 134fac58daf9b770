package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/database"
	"github.com/harukimoto/board-management-api/internal/dto"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/middleware"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
)

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	taskRepo  repository.TaskRepository
	orgRepo   repository.OrganizationRepository
	uploadDir string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(taskRepo repository.TaskRepository, orgRepo repository.OrganizationRepository, uploadDir string) *UserHandler {
	return &UserHandler{
		taskRepo:  taskRepo,
		orgRepo:   orgRepo,
		uploadDir: uploadDir,
	}
}

// ListUsers returns the organization's members with per-status assigned
// task counts.
func (h *UserHandler) ListUsers(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	var members []models.User
	if err := database.GetDB().
		Where("org_id = ? AND role = ?", *user.OrgID, models.RoleMember).
		Find(&members).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch users", err)
		return
	}

	results := make([]dto.UserWithTaskCountsDTO, len(members))
	for i, member := range members {
		pending, err := h.taskRepo.CountByAssigneeAndStatus(member.ID, models.TaskStatusPending)
		if err != nil {
			apierrors.InternalError(c, "Failed to count tasks", err)
			return
		}
		inProgress, err := h.taskRepo.CountByAssigneeAndStatus(member.ID, models.TaskStatusInProgress)
		if err != nil {
			apierrors.InternalError(c, "Failed to count tasks", err)
			return
		}
		completed, err := h.taskRepo.CountByAssigneeAndStatus(member.ID, models.TaskStatusCompleted)
		if err != nil {
			apierrors.InternalError(c, "Failed to count tasks", err)
			return
		}

		results[i] = dto.UserWithTaskCountsDTO{
			UserDTO:         dto.ToUserDTO(member),
			PendingTasks:    pending,
			InProgressTasks: inProgress,
			CompletedTasks:  completed,
		}
	}

	c.JSON(http.StatusOK, results)
}

// GetUserByID returns a single user projection.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// UpdateUserRole assigns one of the built-in roles to a user. Custom
// organization role labels are not accepted here.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateRoleRequest struct {
		Role models.Role `json:"role"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	if !models.IsFixedRole(req.Role) {
		apierrors.BadRequest(c, "Invalid role")
		return
	}

	user.Role = req.Role
	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update role", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated successfully",
		"user":    dto.ToUserDTO(user),
	})
}

// UpdateMyUser updates the requester's name, username, and notification
// settings.
func (h *UserHandler) UpdateMyUser(c *gin.Context) {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateMyUserRequest struct {
		Name                 string                       `json:"name"`
		Username             string                       `json:"username"`
		NotificationSettings *models.NotificationSettings `json:"notification_settings"`
	}

	var req UpdateMyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, current.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.NotificationSettings != nil {
		settings := datatypes.NewJSONType(*req.NotificationSettings)
		user.NotificationSettings = &settings
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// UploadProfileImage stores an uploaded image and points the requester's
// profile at it.
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "No image file uploaded")
		return
	}

	filename := fmt.Sprintf("%d_%s", current.ID, filepath.Base(file.Filename))
	dest := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		apierrors.InternalError(c, "Failed to store image", err)
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, current.ID).Error; err != nil {
		apierrors.InternalError(c, "Server error", err)
		return
	}

	user.ProfileImageURL = dest
	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile image updated",
		"user":    dto.ToUserDTO(user),
	})
}

// AssignUserToDepartment places an org member into one of the
// organization's departments. Unlike board creation, the department is
// validated here.
func (h *UserHandler) AssignUserToDepartment(c *gin.Context) {
	current, ok := requireOrgUser(c)
	if !ok {
		return
	}

	// The users tree shares one wildcard, so the org id arrives as :id.
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}
	if orgID != *current.OrgID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	type AssignDepartmentRequest struct {
		UserID       *uint64 `json:"user_id"`
		DepartmentID *uint64 `json:"department_id"`
	}

	var req AssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.UserID == nil || req.DepartmentID == nil {
		apierrors.BadRequest(c, "User ID and Department ID are required")
		return
	}

	dept, err := h.orgRepo.FindDepartment(orgID, *req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Department not found in this organization")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, *req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "User not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	user.DepartmentID = req.DepartmentID
	if err := database.GetDB().Save(&user).Error; err != nil {
		apierrors.InternalError(c, "Failed to assign department", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User assigned to department: %s", dept.Name),
		"user":    dto.ToUserDTO(user),
	})
}
