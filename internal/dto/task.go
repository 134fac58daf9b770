package dto

import (
	"time"

	"github.com/harukimoto/board-management-api/internal/models"
)

// CommentDTO represents a task comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	User      *UserDTO  `json:"user,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                 uint64              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Priority           models.TaskPriority `json:"priority"`
	Status             models.TaskStatus   `json:"status"`
	StartDate          *time.Time          `json:"start_date"`
	DueDate            *time.Time          `json:"due_date"`
	CreatedByID        uint64              `json:"created_by_id"`
	OrgID              uint64              `json:"org_id"`
	BoardID            *uint64             `json:"board_id"`
	Category           string              `json:"category"`
	Attachments        []string            `json:"attachments"`
	TodoChecklist      []models.TodoItem   `json:"todo_checklist"`
	Progress           int                 `json:"progress"`
	Order              int                 `json:"order"`
	CompletedTodoCount int                 `json:"completed_todo_count"`
	CreatedBy          *UserDTO            `json:"created_by,omitempty"`
	AssignedTo         []UserDTO           `json:"assigned_to"`
	Comments           []CommentDTO        `json:"comments,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Text:      comment.Text,
		Timestamp: comment.Timestamp,
	}

	if comment.User.ID != 0 {
		user := ToUserDTO(comment.User)
		dto.User = &user
	}

	return dto
}

// ToCommentDTOs converts a comment slice
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		dtos[i] = ToCommentDTO(comment)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      task.Priority,
		Status:        task.Status,
		StartDate:     task.StartDate,
		DueDate:       task.DueDate,
		CreatedByID:   task.CreatedByID,
		OrgID:         task.OrgID,
		BoardID:       task.BoardID,
		Category:      task.Category,
		Attachments:   task.Attachments,
		TodoChecklist: task.TodoChecklist,
		Progress:      task.Progress,
		Order:         task.Order,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
	if dto.Attachments == nil {
		dto.Attachments = []string{}
	}
	if dto.TodoChecklist == nil {
		dto.TodoChecklist = []models.TodoItem{}
	}

	dto.CompletedTodoCount = task.CompletedTodoCount()

	if task.CreatedBy.ID != 0 {
		creator := ToUserDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	dto.AssignedTo = make([]UserDTO, len(task.AssignedTo))
	for i, user := range task.AssignedTo {
		dto.AssignedTo[i] = ToUserDTO(user)
	}

	if len(task.Comments) > 0 {
		dto.Comments = ToCommentDTOs(task.Comments)
	}

	return dto
}

// ToTaskDTOs converts a task slice
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
