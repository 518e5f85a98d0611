package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

type WorkspaceRepositoryInterface interface {
	CreateWithOwner(ctx context.Context, workspace *model.Workspace, owner *model.WorkspaceMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

var _ WorkspaceRepositoryInterface = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// CreateWithOwner inserts the workspace together with its owner membership.
// Both writes happen in one transaction so a failed membership insert never
// leaves an ownerless workspace behind.
func (r *WorkspaceRepository) CreateWithOwner(ctx context.Context, workspace *model.Workspace, owner *model.WorkspaceMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		owner.WorkspaceID = workspace.ID
		return tx.Create(owner).Error
	})
}

// GetByID returns a live workspace, or nil when absent or soft-deleted.
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// GetForUser returns live workspaces where the user holds an active
// membership.
func (r *WorkspaceRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ? AND workspace_members.is_deleted = false", userID).
		Where("workspaces.is_deleted = false").
		Order("workspaces.created_at DESC").
		Find(&workspaces).Error
	return workspaces, err
}

// SoftDelete marks the workspace deleted. Member rows are left in place;
// they stop conferring access because workspace reads filter the deleted
// parent out.
func (r *WorkspaceRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Workspace{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}
