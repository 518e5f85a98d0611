package repository

import (
	"context"
	"errors"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMemberRepository struct {
	db *gorm.DB
}

type BoardMemberRepositoryInterface interface {
	GetActive(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error)
	ListActive(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error)
	Invite(ctx context.Context, member *model.BoardMember) error
	Update(ctx context.Context, member *model.BoardMember) error
}

var _ BoardMemberRepositoryInterface = (*BoardMemberRepository)(nil)

func NewBoardMemberRepository(db *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{db: db}
}

// GetActive returns the user's live membership on the board, or nil.
func (r *BoardMemberRepository) GetActive(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	var member model.BoardMember
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ? AND is_deleted = false", boardID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *BoardMemberRepository) ListActive(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	var members []model.BoardMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("board_id = ? AND is_deleted = false", boardID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

// Invite inserts a fresh membership. Board scope has no reactivation path:
// removed rows stay behind and the partial unique index (live rows only)
// lets a new invite for the same user through. An existing active
// membership yields ErrAlreadyMember.
func (r *BoardMemberRepository) Invite(ctx context.Context, member *model.BoardMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BoardMember
		err := tx.Where("board_id = ? AND user_id = ? AND is_deleted = false", member.BoardID, member.UserID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(member).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyMember
			}
			return err
		}
		return nil
	})
}

func (r *BoardMemberRepository) Update(ctx context.Context, member *model.BoardMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}
