package repository

import (
	"github.com/harukimoto/board-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// RegisterWithNewOrganization creates a user together with a fresh
	// organization owned by that user, within a single transaction.
	RegisterWithNewOrganization(user *models.User, org *models.Organization) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByEmailOrUsername finds a user matching either unique field
	FindByEmailOrUsername(email, username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ListByOrganization lists users belonging to an organization,
	// optionally restricted to a role
	ListByOrganization(orgID uint64, role *models.Role) ([]models.User, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByIDWithRelations loads an organization with creator, members and
	// departments
	FindByIDWithRelations(id uint64) (*models.Organization, error)

	// Update persists changes to an organization
	Update(org *models.Organization) error

	// AddDepartment appends a department to an organization
	AddDepartment(dept *models.Department) error

	// FindDepartment finds a department scoped to an organization
	FindDepartment(orgID, departmentID uint64) (*models.Department, error)

	// RemoveDepartment deletes a department scoped to an organization
	RemoveDepartment(orgID, departmentID uint64) error

	// ResetRoleToMember downgrades every org user holding the given custom
	// role label back to member
	ResetRoleToMember(orgID uint64, roleLabel string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByBoard retrieves a board's tasks within an organization, sorted
	// by display order, optionally filtered by status
	ListByBoard(boardID, orgID uint64, status *models.TaskStatus) ([]models.Task, error)

	// CountByBoard counts a board's tasks within an organization
	CountByBoard(boardID uint64, orgID uint64) (int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task along with its assignments and comments
	Delete(id uint64) error

	// ReplaceAssignees replaces the task's assignee set
	ReplaceAssignees(task *models.Task, userIDs []uint64) error

	// AddComment appends a comment to a task
	AddComment(comment *models.Comment) error

	// ListComments lists a task's comments with their authors
	ListComments(taskID uint64) ([]models.Comment, error)

	// CountByAssigneeAndStatus counts tasks assigned to a user with the
	// given status
	CountByAssigneeAndStatus(userID uint64, status models.TaskStatus) (int64, error)

	// CountUsersInOrganization counts how many of the given user IDs belong
	// to the organization
	CountUsersInOrganization(userIDs []uint64, orgID uint64) (int64, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// ListByOrganization lists an organization's boards, optionally
	// filtered by department, sorted by display order
	ListByOrganization(orgID uint64, departmentID *uint64) ([]models.Board, error)

	// DeleteCascade deletes every task referencing the board, then the
	// board itself, in one transaction
	DeleteCascade(id uint64) error
}
