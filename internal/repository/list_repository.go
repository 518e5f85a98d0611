package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListRepository struct {
	db *gorm.DB
}

type ListRepositoryInterface interface {
	CreateWithNextOrder(ctx context.Context, list *model.List) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.List, error)
	GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error)
	SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	Reorder(ctx context.Context, boardID uuid.UUID, listIDs []uuid.UUID, updatedBy uuid.UUID) error
}

var _ ListRepositoryInterface = (*ListRepository)(nil)

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

// CreateWithNextOrder appends the list at max(order)+1 among its live
// siblings (1 when the board is empty). The parent board row is locked for
// the duration of the transaction so concurrent appends on the same board
// serialize and cannot mint the same order value.
func (r *ListRepository) CreateWithNextOrder(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent model.Board
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND is_deleted = false", list.BoardID).
			First(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		if err != nil {
			return err
		}

		var maxOrder struct {
			Max int
		}
		if err := tx.Model(&model.List{}).
			Select(`COALESCE(MAX("order"), 0) as max`).
			Where("board_id = ? AND is_deleted = false", list.BoardID).
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		list.Order = maxOrder.Max + 1
		return tx.Create(list).Error
	})
}

// GetByID returns a live list, or nil when absent or soft-deleted.
func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetByBoard returns live lists sorted by order; created_at is the stable
// tie-break so repeated reads agree even when two lists share an order.
func (r *ListRepository) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND is_deleted = false", boardID).
		Order(`"order", created_at`).
		Find(&lists).Error
	return lists, err
}

func (r *ListRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.List{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"updated_by": actorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

// Reorder assigns order = position+1 to each id in sequence, scoped to
// live lists of the given board. Ids that don't match are silently skipped
// and lists absent from the sequence keep their stale order. It is a
// partial update, not a replace.
func (r *ListRepository) Reorder(ctx context.Context, boardID uuid.UUID, listIDs []uuid.UUID, updatedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range listIDs {
			if err := tx.Model(&model.List{}).
				Where("id = ? AND board_id = ? AND is_deleted = false", id, boardID).
				Updates(map[string]interface{}{
					"order":      i + 1,
					"updated_by": updatedBy,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
