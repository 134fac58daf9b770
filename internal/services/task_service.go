package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/models"
	"github.com/harukimoto/board-management-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTitleRequired   = errors.New("title is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidAssignee     = errors.New("one or more users are not members of this organization")
	ErrCommentTextRequired = errors.New("comment text is required")
)

// taskPreloads is the relation set loaded for task responses.
var taskPreloads = []string{"CreatedBy", "AssignedTo", "Comments", "Comments.User"}

// TaskService owns task CRUD and the checklist/status lifecycle.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ApplyStatus sets the target status on the task. Setting Completed forces
// every checklist item to completed and progress to 100; repeating it is a
// no-op. Other transitions change only the status value.
func ApplyStatus(task *models.Task, status models.TaskStatus) {
	task.Status = status

	if status == models.TaskStatusCompleted {
		for i := range task.TodoChecklist {
			task.TodoChecklist[i].Completed = true
		}
		task.Progress = 100
	}
}

// ApplyChecklist replaces the task checklist and recomputes progress and
// status from it. The checklist is authoritative: whatever status was set
// before is overwritten by the derivation.
func ApplyChecklist(task *models.Task, items []models.TodoItem) {
	task.TodoChecklist = items

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	if len(items) > 0 {
		task.Progress = int(math.Round(float64(completed) / float64(len(items)) * 100))
	} else {
		task.Progress = 0
	}

	switch {
	case task.Progress == 100:
		task.Status = models.TaskStatusCompleted
	case task.Progress > 0:
		task.Status = models.TaskStatusInProgress
	default:
		task.Status = models.TaskStatusPending
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	StartDate     *time.Time
	DueDate       *time.Time
	AssignedTo    []uint64
	Attachments   []string
	TodoChecklist []models.TodoItem
	Category      string
	BoardID       *uint64
	OrgID         uint64
	CreatorID     uint64
}

// CreateTask creates a task in the creator's organization. The display order
// is one past the count of tasks already on the board; it is never
// re-compacted on deletion.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}
	if input.Priority != "" && !models.IsValidTaskPriority(input.Priority) {
		return nil, ErrInvalidTaskPriority
	}

	assignees := uniqueUint64(input.AssignedTo)
	if len(assignees) > 0 {
		if err := s.verifyAssignees(assignees, input.OrgID); err != nil {
			return nil, err
		}
	}

	order := 1
	if input.BoardID != nil {
		count, err := s.taskRepo.CountByBoard(*input.BoardID, input.OrgID)
		if err != nil {
			return nil, fmt.Errorf("failed to count board tasks: %w", err)
		}
		order = int(count) + 1
	}

	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Priority:      input.Priority,
		StartDate:     input.StartDate,
		DueDate:       input.DueDate,
		Attachments:   input.Attachments,
		TodoChecklist: input.TodoChecklist,
		Category:      input.Category,
		BoardID:       input.BoardID,
		OrgID:         input.OrgID,
		CreatedByID:   input.CreatorID,
		Order:         order,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	ApplyChecklist(task, task.TodoChecklist)

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(assignees) > 0 {
		if err := s.taskRepo.ReplaceAssignees(task, assignees); err != nil {
			return nil, fmt.Errorf("failed to assign users: %w", err)
		}
	}

	return s.reload(task.ID)
}

// UpdateTaskInput holds optional task fields; nil values keep the stored ones.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	StartDate     *time.Time
	DueDate       *time.Time
	AssignedTo    []uint64
	Attachments   []string
	TodoChecklist []models.TodoItem
	Category      *string
	BoardID       *uint64
}

// UpdateTask updates general task fields. Checklist updates through here do
// not rederive progress; that is the checklist endpoint's job.
func (s *TaskService) UpdateTask(task models.Task, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !models.IsValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Attachments != nil {
		task.Attachments = input.Attachments
	}
	if input.TodoChecklist != nil {
		task.TodoChecklist = input.TodoChecklist
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.BoardID != nil {
		task.BoardID = input.BoardID
	}

	assignees := uniqueUint64(input.AssignedTo)
	if input.AssignedTo != nil {
		if err := s.verifyAssignees(assignees, task.OrgID); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(&task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.AssignedTo != nil {
		if err := s.taskRepo.ReplaceAssignees(&task, assignees); err != nil {
			return nil, fmt.Errorf("failed to assign users: %w", err)
		}
	}

	return s.reload(task.ID)
}

// UpdateStatus applies a direct status change.
func (s *TaskService) UpdateStatus(task models.Task, status models.TaskStatus) (*models.Task, error) {
	if !models.IsValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	ApplyStatus(&task, status)

	if err := s.taskRepo.Update(&task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.reload(task.ID)
}

// ReplaceChecklist replaces the checklist and persists the rederived
// progress and status in the same row write as the checklist itself.
func (s *TaskService) ReplaceChecklist(task models.Task, items []models.TodoItem) (*models.Task, error) {
	ApplyChecklist(&task, items)

	if err := s.taskRepo.Update(&task); err != nil {
		return nil, fmt.Errorf("failed to update task checklist: %w", err)
	}

	return s.reload(task.ID)
}

// ListByBoard returns the board's tasks inside the given organization.
func (s *TaskService) ListByBoard(boardID, orgID uint64, status *models.TaskStatus) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByBoard(boardID, orgID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes a task with its assignments and comments.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddComment appends a comment to the task and returns the full comment list.
func (s *TaskService) AddComment(task models.Task, authorID uint64, text string) ([]models.Comment, error) {
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	comment := &models.Comment{
		TaskID:    task.ID,
		UserID:    authorID,
		Text:      text,
		Timestamp: time.Now(),
	}
	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return s.taskRepo.ListComments(task.ID)
}

// GetComments lists a task's comments.
func (s *TaskService) GetComments(taskID uint64) ([]models.Comment, error) {
	return s.taskRepo.ListComments(taskID)
}

// verifyAssignees expects an already-deduplicated id list.
func (s *TaskService) verifyAssignees(ids []uint64, orgID uint64) error {
	count, err := s.taskRepo.CountUsersInOrganization(ids, orgID)
	if err != nil {
		return fmt.Errorf("failed to verify assignees: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrInvalidAssignee
	}
	return nil
}

// uniqueUint64 drops repeated ids; duplicates would collide on the
// task_assignees primary key.
func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *TaskService) reload(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}
