package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/authz"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 50

type ActivityHandler struct {
	activityRepo repository.ActivityRepositoryInterface
	authz        *authz.Service
}

func NewActivityHandler(activityRepo repository.ActivityRepositoryInterface, authzSvc *authz.Service) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo, authz: authzSvc}
}

type ActivityResponse struct {
	ID         string                 `json:"id"`
	Actor      string                 `json:"actor"`
	Action     string                 `json:"action"`
	Message    string                 `json:"message"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  string                 `json:"created_at"`
}

// formatActivity renders one timeline entry as a sentence, actor name
// first. Unknown actions fall back to the raw action string so old
// entries stay readable after the vocabulary grows.
func formatActivity(entry *model.ActivityLog) string {
	actor := entry.Actor.FullName()
	if actor == "" {
		actor = "Someone"
	}

	var meta map[string]interface{}
	if len(entry.Metadata) > 0 {
		_ = json.Unmarshal(entry.Metadata, &meta)
	}
	name := func(key string) string {
		if v, ok := meta[key].(string); ok {
			return v
		}
		return ""
	}

	switch entry.Action {
	case model.ActionUserRegistered:
		return fmt.Sprintf("%s joined", actor)
	case model.ActionUserLoggedIn:
		return fmt.Sprintf("%s logged in", actor)
	case model.ActionWorkspaceCreated:
		return fmt.Sprintf("%s created the workspace", actor)
	case model.ActionWorkspaceDeleted:
		return fmt.Sprintf("%s deleted the workspace", actor)
	case model.ActionWorkspaceMemberInvited:
		return fmt.Sprintf("%s invited a member to the workspace", actor)
	case model.ActionWorkspaceMemberRemoved:
		return fmt.Sprintf("%s removed a member from the workspace", actor)
	case model.ActionWorkspaceMemberRoleChange:
		return fmt.Sprintf("%s changed a workspace member's role to %s", actor, name("role"))
	case model.ActionBoardCreated:
		return fmt.Sprintf("%s created board %q", actor, name("title"))
	case model.ActionBoardDeleted:
		return fmt.Sprintf("%s deleted the board", actor)
	case model.ActionBoardMemberInvited:
		return fmt.Sprintf("%s invited a member to the board", actor)
	case model.ActionBoardMemberRemoved:
		return fmt.Sprintf("%s removed a member from the board", actor)
	case model.ActionBoardMemberRoleChanged:
		return fmt.Sprintf("%s changed a board member's role to %s", actor, name("role"))
	case model.ActionListCreated:
		return fmt.Sprintf("%s added list %q", actor, name("name"))
	case model.ActionListDeleted:
		return fmt.Sprintf("%s deleted a list", actor)
	case model.ActionListsReordered:
		return fmt.Sprintf("%s reordered the lists", actor)
	case model.ActionCardCreated:
		return fmt.Sprintf("%s added card %q", actor, name("name"))
	case model.ActionCardMoved:
		return fmt.Sprintf("%s moved a card", actor)
	case model.ActionCardDeleted:
		return fmt.Sprintf("%s deleted a card", actor)
	}
	return fmt.Sprintf("%s: %s", actor, entry.Action)
}

func activityResponse(entries []model.ActivityLog) []ActivityResponse {
	response := make([]ActivityResponse, len(entries))
	for i := range entries {
		entry := &entries[i]
		var meta map[string]interface{}
		if len(entry.Metadata) > 0 {
			_ = json.Unmarshal(entry.Metadata, &meta)
		}
		response[i] = ActivityResponse{
			ID:         entry.ID.String(),
			Actor:      entry.Actor.FullName(),
			Action:     entry.Action,
			Message:    formatActivity(entry),
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID.String(),
			Metadata:   meta,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		}
	}
	return response
}

func activityLimit(c *gin.Context) int {
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return limit
}

// GetBoardActivity returns the board's timeline, most recent first.
// @Summary  Board activity
// @Tags     Activity
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    limit query int false "Max entries (default 50)"
// @Success  200 {array} ActivityResponse
// @Router   /boards/{id}/activity [get]
func (h *ActivityHandler) GetBoardActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.authz.RequireBoardMember(c.Request.Context(), boardID, userID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.activityRepo.ListForBoard(c.Request.Context(), boardID, activityLimit(c))
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve activity", err))
		return
	}

	c.JSON(http.StatusOK, activityResponse(entries))
}

// GetWorkspaceActivity returns the workspace's timeline, most recent
// first.
// @Summary  Workspace activity
// @Tags     Activity
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Param    limit query int false "Max entries (default 50)"
// @Success  200 {array} ActivityResponse
// @Router   /workspaces/{id}/activity [get]
func (h *ActivityHandler) GetWorkspaceActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.authz.RequireWorkspaceMember(c.Request.Context(), workspaceID, userID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.activityRepo.ListForWorkspace(c.Request.Context(), workspaceID, activityLimit(c))
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve activity", err))
		return
	}

	c.JSON(http.StatusOK, activityResponse(entries))
}
