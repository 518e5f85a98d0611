package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Logo        string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	DeletedAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}
