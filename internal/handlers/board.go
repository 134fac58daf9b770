package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/dto"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
	"github.com/harukimoto/board-management-api/internal/services"
)

// BoardHandler coordinates board HTTP handlers.
type BoardHandler struct {
	boardRepo   repository.BoardRepository
	taskService *services.TaskService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardRepo repository.BoardRepository, taskService *services.TaskService) *BoardHandler {
	return &BoardHandler{
		boardRepo:   boardRepo,
		taskService: taskService,
	}
}

// CreateBoard creates a board in the requester's organization. The
// department reference is required but not checked against the
// organization's department list.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	type CreateBoardRequest struct {
		Name         string  `json:"name"`
		OrgID        *uint64 `json:"org_id"`
		DepartmentID *uint64 `json:"department_id"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name == "" || req.OrgID == nil || req.DepartmentID == nil {
		apierrors.BadRequest(c, "Name, orgId, and departmentId are required")
		return
	}

	if *req.OrgID != *user.OrgID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	board := models.Board{
		Name:         req.Name,
		CreatedByID:  user.ID,
		OrgID:        *req.OrgID,
		DepartmentID: *req.DepartmentID,
	}

	if err := h.boardRepo.Create(&board); err != nil {
		apierrors.InternalError(c, "Failed to create board", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(board))
}

// ListBoards lists an organization's boards, optionally filtered by
// department.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	// The boards tree shares one wildcard, so the org id arrives as :id.
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}
	if orgID != *user.OrgID {
		apierrors.Forbidden(c, "You are not a member of this organization")
		return
	}

	var departmentID *uint64
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid department_id")
			return
		}
		departmentID = &parsed
	}

	boards, err := h.boardRepo.ListByOrganization(orgID, departmentID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch boards", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTOs(boards))
}

// DeleteBoard deletes a board and every task on it. A nonexistent board is
// a 404 before anything is touched.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	board, err := h.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Board not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	if board.OrgID != *user.OrgID {
		apierrors.Forbidden(c, "Not authorized to delete this board")
		return
	}

	if err := h.boardRepo.DeleteCascade(boardID); err != nil {
		apierrors.InternalError(c, "Failed to delete board", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board and its tasks deleted successfully"})
}

// GetBoardTasks returns the board's tasks with an optional status filter.
func (h *BoardHandler) GetBoardTasks(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	if _, err := h.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Board not found")
		} else {
			apierrors.InternalError(c, "Server error", err)
		}
		return
	}

	var status *models.TaskStatus
	if s := c.Query("status"); s != "" && s != "All" {
		parsed := models.TaskStatus(s)
		if !models.IsValidTaskStatus(parsed) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		status = &parsed
	}

	tasks, err := h.taskService.ListByBoard(boardID, *user.OrgID, status)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"count": len(tasks),
	})
}
