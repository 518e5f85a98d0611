package model

import (
	"time"

	"github.com/google/uuid"
)

// List is an ordered column within a board. Order is 1-based; ties are
// tolerated transiently and reads break them on CreatedAt.
type List struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"not null"`
	Order     int        `gorm:"column:order;not null"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	IsDeleted bool       `gorm:"not null;default:false"`
	DeletedAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}
