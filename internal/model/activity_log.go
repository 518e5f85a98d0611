package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entity types an activity entry can reference. "user" exists for the
// registration/login events, which have no containing entity.
const (
	EntityUser      = "user"
	EntityWorkspace = "workspace"
	EntityBoard     = "board"
	EntityList      = "list"
	EntityCard      = "card"
)

// Activity actions (closed vocabulary).
const (
	ActionUserRegistered            = "user_registered"
	ActionUserLoggedIn              = "user_logged_in"
	ActionWorkspaceCreated          = "workspace_created"
	ActionWorkspaceDeleted          = "workspace_deleted"
	ActionWorkspaceMemberInvited    = "workspace_member_invited"
	ActionWorkspaceMemberRemoved    = "workspace_member_removed"
	ActionWorkspaceMemberRoleChange = "workspace_member_role_changed"
	ActionBoardCreated              = "board_created"
	ActionBoardDeleted              = "board_deleted"
	ActionBoardMemberInvited        = "board_member_invited"
	ActionBoardMemberRemoved        = "board_member_removed"
	ActionBoardMemberRoleChanged    = "board_member_role_changed"
	ActionListCreated               = "list_created"
	ActionListDeleted               = "list_deleted"
	ActionListsReordered            = "lists_reordered"
	ActionCardCreated               = "card_created"
	ActionCardMoved                 = "card_moved"
	ActionCardDeleted               = "card_deleted"
)

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted; metadata carries ancestor ids (board, workspace, list) so
// timeline queries can scope by ancestor.
type ActivityLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action     string         `gorm:"not null"`
	EntityType string         `gorm:"not null;check:entity_type IN ('user', 'workspace', 'board', 'list', 'card')"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`

	Actor User `gorm:"foreignKey:ActorID"`
}
