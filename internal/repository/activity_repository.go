package repository

import (
	"context"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, entry *model.ActivityLog) error
	ListForBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]model.ActivityLog, error)
	ListForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]model.ActivityLog, error)
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an entry. Rows are never updated or deleted.
func (r *ActivityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListForBoard returns the board's timeline, most recent first: entries on
// the board itself plus list/card entries whose metadata carries the board
// id.
func (r *ActivityRepository) ListForBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("(entity_type = ? AND entity_id = ?) OR metadata ->> 'board' = ?",
			model.EntityBoard, boardID, boardID.String()).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// ListForWorkspace returns the workspace's timeline, most recent first.
func (r *ActivityRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("(entity_type = ? AND entity_id = ?) OR metadata ->> 'workspace' = ?",
			model.EntityWorkspace, workspaceID, workspaceID.String()).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
