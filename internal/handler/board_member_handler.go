package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/authz"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardMemberHandler struct {
	boardRepo  repository.BoardRepositoryInterface
	memberRepo repository.BoardMemberRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	authz      *authz.Service
	notifier   *activity.Notifier
}

func NewBoardMemberHandler(
	boardRepo repository.BoardRepositoryInterface,
	memberRepo repository.BoardMemberRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	authzSvc *authz.Service,
	notifier *activity.Notifier,
) *BoardMemberHandler {
	return &BoardMemberHandler{
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		authz:      authzSvc,
		notifier:   notifier,
	}
}

type InviteBoardMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// GetAll lists the board's active members. Any active board member may
// look, viewers included.
// @Summary  List board members
// @Tags     Board Members
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Success  200 {array} MemberResponse
// @Router   /boards/{id}/members [get]
func (h *BoardMemberHandler) GetAll(c *gin.Context) {
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

	members, err := h.memberRepo.ListActive(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve members", err))
		return
	}

	response := make([]MemberResponse, len(members))
	for i, m := range members {
		response[i] = MemberResponse{
			UserID:    m.UserID.String(),
			Email:     m.User.Email,
			FirstName: m.User.FirstName,
			LastName:  m.User.LastName,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, response)
}

// Invite adds a user to the board by email. Requires owner or admin.
// Removed members are not reactivated; a new invite always means a fresh
// membership record.
// @Summary  Invite board member
// @Tags     Board Members
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    request body InviteBoardMemberRequest true "Invite data"
// @Success  201 {object} map[string]interface{}
// @Router   /boards/{id}/invite [post]
func (h *BoardMemberHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req InviteBoardMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Email is required"))
		return
	}
	if req.Role == "" {
		req.Role = model.RoleMember
	}
	if !model.ValidBoardRole(req.Role) {
		respondError(c, apperr.Validation("Invalid board role"))
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve board", err))
		return
	}
	if board == nil {
		respondError(c, apperr.NotFound("Board not found"))
		return
	}

	target, err := h.userRepo.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondError(c, apperr.Internal("Failed to find user", err))
		return
	}
	if target == nil {
		respondError(c, apperr.NotFound("User not found"))
		return
	}

	member := &model.BoardMember{
		ID:      uuid.New(),
		BoardID: boardID,
		UserID:  target.ID,
		Role:    req.Role,
		AddedBy: userID,
	}
	if err := h.memberRepo.Invite(c.Request.Context(), member); err != nil {
		if err == repository.ErrAlreadyMember {
			respondError(c, apperr.Conflict("User is already a board member"))
			return
		}
		respondError(c, apperr.Internal("Failed to invite member", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionBoardMemberInvited, model.EntityBoard, boardID,
		map[string]interface{}{
			"workspace": board.WorkspaceID.String(),
			"board":     boardID.String(),
			"member":    target.ID.String(),
			"role":      req.Role,
		})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member invited",
		"member": MemberResponse{
			UserID:    target.ID.String(),
			Email:     target.Email,
			FirstName: target.FirstName,
			LastName:  target.LastName,
			Role:      member.Role,
			JoinedAt:  member.JoinedAt.Format(time.RFC3339),
		},
	})
}

// Remove soft-deletes a board membership. Requires owner or admin; the
// board owner can never be removed.
// @Summary  Remove board member
// @Tags     Board Members
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    user_id path string true "User ID"
// @Success  200 {object} map[string]string
// @Router   /boards/{id}/members/{user_id} [delete]
func (h *BoardMemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	membership, err := h.memberRepo.GetActive(c.Request.Context(), boardID, targetID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to find membership", err))
		return
	}
	if membership == nil {
		respondError(c, apperr.NotFound("Member not found"))
		return
	}

	if membership.Role == model.RoleOwner {
		respondError(c, apperr.InvalidOperation("Owner cannot be removed"))
		return
	}

	membership.IsDeleted = true
	membership.RemovedBy = &userID
	if err := h.memberRepo.Update(c.Request.Context(), membership); err != nil {
		respondError(c, apperr.Internal("Failed to remove member", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionBoardMemberRemoved, model.EntityBoard, boardID,
		map[string]interface{}{"board": boardID.String(), "member": targetID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "Board member removed"})
}

// ChangeRole updates a board member's role. Unlike the workspace scope
// this is owner-only; admins cannot reassign roles on a board. The
// owner's own role stays immutable and owner cannot be granted.
// @Summary  Change board member role
// @Tags     Board Members
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    user_id path string true "User ID"
// @Param    request body ChangeRoleRequest true "New role"
// @Success  200 {object} map[string]string
// @Router   /boards/{id}/members/{user_id} [patch]
func (h *BoardMemberHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Role is required"))
		return
	}
	if !model.ValidBoardRole(req.Role) {
		respondError(c, apperr.Validation("Invalid board role"))
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleOwner); err != nil {
		respondError(c, err)
		return
	}

	membership, err := h.memberRepo.GetActive(c.Request.Context(), boardID, targetID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to find membership", err))
		return
	}
	if membership == nil {
		respondError(c, apperr.NotFound("Member not found"))
		return
	}

	if membership.Role == model.RoleOwner {
		respondError(c, apperr.InvalidOperation("Owner role cannot be changed"))
		return
	}

	membership.Role = req.Role
	membership.UpdatedBy = &userID
	if err := h.memberRepo.Update(c.Request.Context(), membership); err != nil {
		respondError(c, apperr.Internal("Failed to update role", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionBoardMemberRoleChanged, model.EntityBoard, boardID,
		map[string]interface{}{"board": boardID.String(), "member": targetID.String(), "role": req.Role})

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
