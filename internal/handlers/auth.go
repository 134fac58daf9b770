package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harukimoto/board-management-api/internal/auth"
	"github.com/harukimoto/board-management-api/internal/dto"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/middleware"
	"github.com/harukimoto/board-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	issuer      *auth.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
	}
}

// Register creates a new user and either joins the supplied organization or
// creates a fresh one owned by the registrant.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name            string  `json:"name"`
		Username        string  `json:"username"`
		Email           string  `json:"email"`
		Password        string  `json:"password"`
		ProfileImageURL string  `json:"profile_image_url"`
		OrgID           *uint64 `json:"org_id"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:            req.Name,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ProfileImageURL: req.ProfileImageURL,
		OrgID:           req.OrgID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthResponse(*user, token))
}

// Login authenticates a user and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(*user, token))
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// UpdateProfile updates the authenticated user's own fields and returns a
// refreshed token.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, services.UpdateProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.issuer.Issue(updated.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(*updated, token))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUsernameTooShort),
		errors.Is(err, services.ErrInvalidOrganization):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Server error", err)
	}
}
