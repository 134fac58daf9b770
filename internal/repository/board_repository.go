package repository

import (
	"gorm.io/gorm"

	"github.com/harukimoto/board-management-api/internal/models"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListByOrganization lists an organization's boards, optionally filtered by
// department, sorted by display order
func (r *GormBoardRepository) ListByOrganization(orgID uint64, departmentID *uint64) ([]models.Board, error) {
	var boards []models.Board

	query := r.db.
		Preload("CreatedBy").
		Preload("Tasks").
		Where("org_id = ?", orgID)

	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	if err := query.Order("display_order ASC").Find(&boards).Error; err != nil {
		return nil, err
	}

	return boards, nil
}

// DeleteCascade deletes every task referencing the board, then the board
// itself, in one transaction.
func (r *GormBoardRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("board_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Board{}, id).Error
	})
}
