package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harukimoto/board-management-api/internal/dto"
	apierrors "github.com/harukimoto/board-management-api/internal/errors"
	"github.com/harukimoto/board-management-api/internal/middleware"
	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasksByBoard returns a board's tasks in the requester's organization,
// optionally filtered by status, sorted by display order.
func (h *TaskHandler) ListTasksByBoard(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	boardID, err := strconv.ParseUint(c.Param("boardId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "boardId is required")
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

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// GetTask returns the task loaded by the access middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task in the requester's organization.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := requireOrgUser(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title         string              `json:"title"`
		Description   string              `json:"description"`
		Priority      models.TaskPriority `json:"priority"`
		StartDate     *time.Time          `json:"start_date"`
		DueDate       *time.Time          `json:"due_date"`
		AssignedTo    []uint64            `json:"assigned_to"`
		Attachments   []string            `json:"attachments"`
		TodoChecklist []models.TodoItem   `json:"todo_checklist"`
		Category      string              `json:"category"`
		BoardID       *uint64             `json:"board_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		AssignedTo:    req.AssignedTo,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
		Category:      req.Category,
		BoardID:       req.BoardID,
		OrgID:         *user.OrgID,
		CreatorID:     user.ID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask updates general task fields.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	type UpdateTaskRequest struct {
		Title         *string              `json:"title"`
		Description   *string              `json:"description"`
		Priority      *models.TaskPriority `json:"priority"`
		StartDate     *time.Time           `json:"start_date"`
		DueDate       *time.Time           `json:"due_date"`
		AssignedTo    []uint64             `json:"assigned_to"`
		Attachments   []string             `json:"attachments"`
		TodoChecklist []models.TodoItem    `json:"todo_checklist"`
		Category      *string              `json:"category"`
		BoardID       *uint64              `json:"board_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		StartDate:     req.StartDate,
		DueDate:       req.DueDate,
		AssignedTo:    req.AssignedTo,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
		Category:      req.Category,
		BoardID:       req.BoardID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*updated),
	})
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// UpdateTaskStatus applies a direct status change. Completing a task marks
// the whole checklist done.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status == "" {
		req.Status = task.Status
	}

	updated, err := h.taskService.UpdateStatus(task, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status updated",
		"task":    dto.ToTaskDTO(*updated),
	})
}

// UpdateTaskChecklist replaces the checklist; progress and status are
// rederived from it.
func (h *TaskHandler) UpdateTaskChecklist(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	type UpdateChecklistRequest struct {
		TodoChecklist []models.TodoItem `json:"todo_checklist"`
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.ReplaceChecklist(task, req.TodoChecklist)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task checklist updated",
		"task":    dto.ToTaskDTO(*updated),
	})
}

// AddComment appends a comment to the task.
func (h *TaskHandler) AddComment(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddCommentRequest struct {
		Text string `json:"text"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comments, err := h.taskService.AddComment(task, user.ID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Comment added successfully",
		"comments": dto.ToCommentDTOs(comments),
	})
}

// GetComments lists the task's comments.
func (h *TaskHandler) GetComments(c *gin.Context) {
	task, ok := middleware.GetContextTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context", nil)
		return
	}

	comments, err := h.taskService.GetComments(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentDTOs(comments)})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrCommentTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Server error", err)
	}
}
