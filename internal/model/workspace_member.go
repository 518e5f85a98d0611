package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkspaceMember links a user to a workspace with a role. The
// (workspace, user) pair is unique across live and removed rows:
// re-inviting a removed user reactivates the existing record instead
// of inserting a duplicate.
type WorkspaceMember struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user"`
	Role        string     `gorm:"not null;default:'member';check:role IN ('owner', 'admin', 'member')"`
	JoinedAt    time.Time  `gorm:"not null;autoCreateTime"`
	AddedBy     *uuid.UUID `gorm:"type:uuid"`
	IsDeleted   bool       `gorm:"not null;default:false"`
	RemovedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}
