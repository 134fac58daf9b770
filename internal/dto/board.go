package dto

import (
	"time"

	"github.com/harukimoto/board-management-api/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	CreatedByID  uint64    `json:"created_by_id"`
	OrgID        uint64    `json:"org_id"`
	DepartmentID uint64    `json:"department_id"`
	Order        int       `json:"order"`
	CreatedBy    *UserDTO  `json:"created_by,omitempty"`
	Tasks        []TaskDTO `json:"tasks"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	dto := BoardDTO{
		ID:           board.ID,
		Name:         board.Name,
		CreatedByID:  board.CreatedByID,
		OrgID:        board.OrgID,
		DepartmentID: board.DepartmentID,
		Order:        board.Order,
		CreatedAt:    board.CreatedAt,
		UpdatedAt:    board.UpdatedAt,
	}

	if board.CreatedBy.ID != 0 {
		creator := ToUserDTO(board.CreatedBy)
		dto.CreatedBy = &creator
	}

	dto.Tasks = make([]TaskDTO, len(board.Tasks))
	for i, task := range board.Tasks {
		dto.Tasks[i] = ToTaskDTO(task)
	}

	return dto
}

// ToBoardDTOs converts a board slice
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	dtos := make([]BoardDTO, len(boards))
	for i, board := range boards {
		dtos[i] = ToBoardDTO(board)
	}
	return dtos
}
