package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harukimoto/board-management-api/internal/dto"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/middleware"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// GetMyOrganization returns the requester's organization with members and
// departments.
func (h *OrganizationHandler) GetMyOrganization(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(*user.OrgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// UpdateMyOrganization renames the requester's organization. The route is
// admin-gated; the service additionally requires the requester to be the
// organization's creator.
func (h *OrganizationHandler) UpdateMyOrganization(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	type UpdateOrgRequest struct {
		Name string `json:"name"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganization(user, *user.OrgID, req.Name)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// GetMembers lists users in the requester's organization.
func (h *OrganizationHandler) GetMembers(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(*user.OrgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	memberDTOs := make([]dto.UserDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToUserDTO(member)
	}

	c.JSON(http.StatusOK, memberDTOs)
}

// GetRoles returns the organization's custom role labels.
func (h *OrganizationHandler) GetRoles(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}

	roles, err := h.orgService.GetRoles(orgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}
	if roles == nil {
		roles = []string{}
	}

	c.JSON(http.StatusOK, roles)
}

// AddRole appends a custom role label to the organization.
func (h *OrganizationHandler) AddRole(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}

	type AddRoleRequest struct {
		RoleName string `json:"role_name"`
	}

	var req AddRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.AddRole(orgID, req.RoleName)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Role added successfully",
		"organization": dto.ToOrganizationDTO(*org),
	})
}

// RemoveRole deletes a custom role label; users holding it fall back to
// member.
func (h *OrganizationHandler) RemoveRole(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}

	type RemoveRoleRequest struct {
		RoleName string `json:"role_name"`
	}

	var req RemoveRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orgService.RemoveRole(orgID, req.RoleName); err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role deleted successfully",
	})
}

// GetDepartments lists the organization's departments.
func (h *OrganizationHandler) GetDepartments(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}

	departments, err := h.orgService.ListDepartments(orgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	deptDTOs := make([]dto.DepartmentDTO, len(departments))
	for i, dept := range departments {
		deptDTOs[i] = dto.ToDepartmentDTO(dept)
	}

	c.JSON(http.StatusOK, gin.H{"departments": deptDTOs})
}

// AddDepartment appends a department to the organization.
func (h *OrganizationHandler) AddDepartment(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}
	user, _ := middleware.GetCurrentUser(c)

	type AddDepartmentRequest struct {
		Name string `json:"name"`
	}

	var req AddDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dept, err := h.orgService.AddDepartment(orgID, req.Name, user.ID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"department": dto.ToDepartmentDTO(*dept)})
}

// DeleteDepartment removes a department from the organization.
func (h *OrganizationHandler) DeleteDepartment(c *gin.Context) {
	orgID, ok := orgIDParamForUser(c)
	if !ok {
		return
	}

	departmentID, err := strconv.ParseUint(c.Param("departmentId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid department ID")
		return
	}

	if err := h.orgService.RemoveDepartment(orgID, departmentID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

// requireOrgUser returns the authenticated user, failing the request when
// the user has not joined an organization yet.
func requireOrgUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return models.User{}, false
	}
	if user.OrgID == nil {
		apierrors.NotFound(c, "Organization not found")
		return models.User{}, false
	}
	return user, true
}

// orgIDParamForUser parses the :orgId parameter and rejects requesters from
// a different organization.
func orgIDParamForUser(c *gin.Context) (uint64, bool) {
	orgID, err := strconv.ParseUint(c.Param("orgId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return 0, false
	}

	user, ok := requireOrgUser(c)
	if !ok {
		return 0, false
	}
	if *user.OrgID != orgID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return 0, false
	}

	return orgID, true
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrRoleNotFound),
		errors.Is(err, services.ErrDepartmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrRoleNameRequired),
		errors.Is(err, services.ErrRoleExists),
		errors.Is(err, services.ErrDepartmentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Server error", err)
	}
}
