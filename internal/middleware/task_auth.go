package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/constants"
	"github.com/harukimoto/board-management-api/internal/database"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/models"
)

// RequireTaskAccess loads the task from the :id route parameter and checks
// that the requester belongs to the task's organization. Any org member may
// act on any task in the organization; there is no per-board or
// per-assignment restriction.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authorized")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("AssignedTo").
			Preload("Comments").
			Preload("Comments.User").
			First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Server error", err)
			}
			c.Abort()
			return
		}

		if user.OrgID == nil || *user.OrgID != task.OrgID {
			apierrors.Forbidden(c, "Not authorized to access this task")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetContextTask retrieves the task loaded by RequireTaskAccess.
func GetContextTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	return task, ok
}
