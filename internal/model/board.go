package model

import (
	"time"

	"github.com/google/uuid"
)

// Board visibility values.
const (
	VisibilityPrivate   = "private"
	VisibilityWorkspace = "workspace"
)

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Visibility  string     `gorm:"not null;default:'workspace';check:visibility IN ('private', 'workspace')"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid"`
	IsDeleted   bool       `gorm:"not null;default:false"`
	DeletedAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	Creator   User      `gorm:"foreignKey:CreatedBy"`
}
