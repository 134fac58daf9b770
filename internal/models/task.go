package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// IsValidTaskStatus reports whether s is one of the three task statuses.
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// IsValidTaskPriority reports whether p is one of the three priorities.
func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TodoItem is one checklist entry on a task. The checklist is the source of
// truth for the task's derived progress.
type TodoItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	StartDate   *time.Time   `json:"start_date"`
	DueDate     *time.Time   `json:"due_date"`
	CreatedByID uint64       `gorm:"not null" json:"created_by_id"`

	// OrgID never changes after creation and anchors every authorization
	// check on the task.
	OrgID   uint64  `gorm:"not null;index" json:"org_id"`
	BoardID *uint64 `gorm:"index" json:"board_id"`

	Category      string                        `gorm:"type:varchar(255)" json:"category"`
	Attachments   datatypes.JSONSlice[string]   `json:"attachments"`
	TodoChecklist datatypes.JSONSlice[TodoItem] `json:"todo_checklist"`

	// Progress is derived from the checklist (0-100).
	Progress int `gorm:"not null;default:0" json:"progress"`

	// Order is count-of-existing-board-tasks+1 at creation; it is not
	// re-compacted when tasks are deleted.
	Order int `gorm:"column:display_order;not null;default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy  User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedTo []User    `gorm:"many2many:task_assignees" json:"assigned_to,omitempty"`
	Comments   []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// CompletedTodoCount counts the completed checklist items.
func (t Task) CompletedTodoCount() int {
	count := 0
	for _, item := range t.TodoChecklist {
		if item.Completed {
			count++
		}
	}
	return count
}

// Comment is a task comment with its author.
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `json:"timestamp"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
