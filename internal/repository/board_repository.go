package repository

import (
	"context"
	"errors"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	CreateWithOwner(ctx context.Context, board *model.Board, owner *model.BoardMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateWithOwner inserts the board and its creator's owner membership in
// one transaction. If the membership insert fails the board insert rolls
// back, so no board exists without an owner.
func (r *BoardRepository) CreateWithOwner(ctx context.Context, board *model.Board, owner *model.BoardMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		owner.BoardID = board.ID
		return tx.Create(owner).Error
	})
}

// GetByID returns a live board, or nil when absent or soft-deleted.
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_deleted = false", workspaceID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}
