package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardMember links a user to a board with a role. Unlike workspace
// membership there is no reactivation: removal soft-deletes the row and a
// later invite inserts a fresh one. The unique index on (board, user) is
// therefore partial, covering live rows only (see db/migrations).
type BoardMember struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Role      string     `gorm:"not null;default:'member';check:role IN ('owner', 'admin', 'member', 'viewer')"`
	JoinedAt  time.Time  `gorm:"not null;autoCreateTime"`
	AddedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	IsDeleted bool       `gorm:"not null;default:false"`
	RemovedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
	User  User  `gorm:"foreignKey:UserID"`
}
