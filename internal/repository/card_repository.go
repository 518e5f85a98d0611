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

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	CreateWithNextOrder(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error)
	Move(ctx context.Context, cardID, listID uuid.UUID, order int, updatedBy uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// CreateWithNextOrder appends the card at max(order)+1 among the live
// cards of its list. The parent list row is locked so concurrent appends
// on the same list serialize.
func (r *CardRepository) CreateWithNextOrder(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent model.List
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND is_deleted = false", card.ListID).
			First(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		if err != nil {
			return err
		}

		var maxOrder struct {
			Max int
		}
		if err := tx.Model(&model.Card{}).
			Select(`COALESCE(MAX("order"), 0) as max`).
			Where("list_id = ? AND is_deleted = false", card.ListID).
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		card.Order = maxOrder.Max + 1
		return tx.Create(card).Error
	})
}

// GetByID returns a live card, or nil when absent or soft-deleted.
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = false", id).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetByList returns live cards sorted by order with created_at as the
// stable tie-break: concurrent moves can leave two cards sharing an order
// value, and reads must still be deterministic.
func (r *CardRepository) GetByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("list_id = ? AND is_deleted = false", listID).
		Order(`"order", created_at`).
		Find(&cards).Error
	return cards, err
}

// Move sets the card's list and order to the caller-supplied values in a
// single atomic update. No sibling shifting happens here: the client
// computes the target order from its re-sorted view and the last writer
// wins. Duplicate orders are tolerated; GetByList breaks ties.
func (r *CardRepository) Move(ctx context.Context, cardID, listID uuid.UUID, order int, updatedBy uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ? AND is_deleted = false", cardID).
		Updates(map[string]interface{}{
			"list_id":    listID,
			"order":      order,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"deleted_by": actorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
