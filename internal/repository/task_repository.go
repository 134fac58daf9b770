package repository

import (
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByBoard retrieves a board's tasks within an organization, sorted by
// display order, optionally filtered by status
func (r *GormTaskRepository) ListByBoard(boardID, orgID uint64, status *models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.
		Preload("AssignedTo").
		Preload("Comments").
		Preload("Comments.User").
		Where("board_id = ? AND org_id = ?", boardID, orgID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Order("display_order ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// CountByBoard counts a board's tasks within an organization
func (r *GormTaskRepository) CountByBoard(boardID uint64, orgID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("board_id = ? AND org_id = ?", boardID, orgID).
		Count(&count).Error
	return count, err
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task along with its assignments and comments
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceAssignees replaces the task's assignee set
func (r *GormTaskRepository) ReplaceAssignees(task *models.Task, userIDs []uint64) error {
	users := make([]models.User, len(userIDs))
	for i, id := range userIDs {
		users[i] = models.User{ID: id}
	}
	return r.db.Model(task).Association("AssignedTo").Replace(users)
}

// AddComment appends a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments lists a task's comments with their authors
func (r *GormTaskRepository) ListComments(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("timestamp ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByAssigneeAndStatus counts tasks assigned to a user with the given status
func (r *GormTaskRepository) CountByAssigneeAndStatus(userID uint64, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ? AND tasks.status = ?", userID, status).
		Count(&count).Error
	return count, err
}

// CountUsersInOrganization counts how many of the given user IDs belong to the organization
func (r *GormTaskRepository) CountUsersInOrganization(userIDs []uint64, orgID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("org_id = ? AND id IN ?", orgID, userIDs).
		Count(&count).Error
	return count, err
}
