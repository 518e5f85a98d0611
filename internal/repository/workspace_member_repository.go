package repository

import (
	"context"
	"errors"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceMemberRepository struct {
	db *gorm.DB
}

type WorkspaceMemberRepositoryInterface interface {
	GetActive(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error)
	ListActive(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error)
	Invite(ctx context.Context, workspaceID, userID uuid.UUID, role string, addedBy uuid.UUID) (*model.WorkspaceMember, error)
	Update(ctx context.Context, member *model.WorkspaceMember) error
}

var _ WorkspaceMemberRepositoryInterface = (*WorkspaceMemberRepository)(nil)

func NewWorkspaceMemberRepository(db *gorm.DB) *WorkspaceMemberRepository {
	return &WorkspaceMemberRepository{db: db}
}

// GetActive returns the user's live membership in the workspace, or nil.
// Soft-deleted memberships confer nothing and are not returned here.
func (r *WorkspaceMemberRepository) GetActive(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error) {
	var member model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ? AND is_deleted = false", workspaceID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *WorkspaceMemberRepository) ListActive(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ? AND is_deleted = false", workspaceID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

// Invite adds the user to the workspace. The (workspace, user) pair is
// unique across live and removed rows, so a previously removed member is
// reactivated in place rather than duplicated; an active membership yields
// ErrAlreadyMember. The whole check-then-write runs in one transaction and
// the unique index backstops concurrent inviters.
func (r *WorkspaceMemberRepository) Invite(ctx context.Context, workspaceID, userID uuid.UUID, role string, addedBy uuid.UUID) (*model.WorkspaceMember, error) {
	var member *model.WorkspaceMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.WorkspaceMember
		err := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
			First(&existing).Error

		if err == nil {
			if !existing.IsDeleted {
				return ErrAlreadyMember
			}
			// Reactivate the removed membership in place.
			existing.IsDeleted = false
			existing.RemovedBy = nil
			existing.Role = role
			existing.AddedBy = &addedBy
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			member = &existing
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fresh := model.WorkspaceMember{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        role,
			AddedBy:     &addedBy,
		}
		if err := tx.Create(&fresh).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyMember
			}
			return err
		}
		member = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *WorkspaceMemberRepository) Update(ctx context.Context, member *model.WorkspaceMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}
