package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/auth"
	"github.com/harukimoto/board-management-api/internal/constants"
	"github.com/harukimoto/board-management-api/internal/database"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/models"
)

// RequireAuth verifies the bearer token and resolves it to a stored user.
// Every failure mode responds with the same 401; which sub-check failed is
// never surfaced.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		userID, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Not authorized, token failed")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "Not authorized, token failed")
			} else {
				apierrors.InternalError(c, "Server error", err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// AdminOnly gates a route on the role field. Organization-level updates
// additionally compare against the organization creator; both checks apply.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authorized")
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			apierrors.Forbidden(c, "Access denied, admin only")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated user from context.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
