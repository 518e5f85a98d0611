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
)

type WorkspaceMemberHandler struct {
	workspaceRepo repository.WorkspaceRepositoryInterface
	memberRepo    repository.WorkspaceMemberRepositoryInterface
	userRepo      repository.UserRepositoryInterface
	authz         *authz.Service
	notifier      *activity.Notifier
}

func NewWorkspaceMemberHandler(
	workspaceRepo repository.WorkspaceRepositoryInterface,
	memberRepo repository.WorkspaceMemberRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	authzSvc *authz.Service,
	notifier *activity.Notifier,
) *WorkspaceMemberHandler {
	return &WorkspaceMemberHandler{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		authz:         authzSvc,
		notifier:      notifier,
	}
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type MemberResponse struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	JoinedAt  string `json:"joined_at"`
}

// GetAll lists the workspace's active members. Any active member may look.
// @Summary  List workspace members
// @Tags     Workspace Members
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Success  200 {array} MemberResponse
// @Router   /workspaces/{id}/members [get]
func (h *WorkspaceMemberHandler) GetAll(c *gin.Context) {
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

	members, err := h.memberRepo.ListActive(c.Request.Context(), workspaceID)
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

// Invite adds a user to the workspace by email. Requires owner or admin.
// A previously removed member is reactivated on the same record; an
// active member yields Conflict.
// @Summary  Invite workspace member
// @Tags     Workspace Members
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Param    request body InviteMemberRequest true "Invite data"
// @Success  201 {object} map[string]interface{}
// @Router   /workspaces/{id}/invite [post]
func (h *WorkspaceMemberHandler) Invite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Email is required"))
		return
	}
	if req.Role == "" {
		req.Role = model.RoleMember
	}
	if !model.ValidWorkspaceRole(req.Role) {
		respondError(c, apperr.Validation("Invalid workspace role"))
		return
	}

	if _, err := h.authz.RequireWorkspaceRole(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		respondError(c, err)
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

	member, err := h.memberRepo.Invite(c.Request.Context(), workspaceID, target.ID, req.Role, userID)
	if err != nil {
		if err == repository.ErrAlreadyMember {
			respondError(c, apperr.Conflict("User is already a workspace member"))
			return
		}
		respondError(c, apperr.Internal("Failed to invite member", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionWorkspaceMemberInvited, model.EntityWorkspace, workspaceID,
		map[string]interface{}{"workspace": workspaceID.String(), "member": target.ID.String(), "role": req.Role})

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

// Remove soft-deletes a membership. Requires owner or admin; the owner
// itself can never be removed.
// @Summary  Remove workspace member
// @Tags     Workspace Members
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Param    user_id path string true "User ID"
// @Success  200 {object} map[string]string
// @Router   /workspaces/{id}/members/{user_id} [delete]
func (h *WorkspaceMemberHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if _, err := h.authz.RequireWorkspaceRole(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	membership, err := h.memberRepo.GetActive(c.Request.Context(), workspaceID, targetID)
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

	h.notifier.Record(c.Request.Context(), userID, model.ActionWorkspaceMemberRemoved, model.EntityWorkspace, workspaceID,
		map[string]interface{}{"workspace": workspaceID.String(), "member": targetID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "Workspace member removed"})
}

// ChangeRole updates a member's role. Workspace scope permits owner or
// admin; the owner's own role is immutable and owner cannot be granted.
// @Summary  Change workspace member role
// @Tags     Workspace Members
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Param    user_id path string true "User ID"
// @Param    request body ChangeRoleRequest true "New role"
// @Success  200 {object} map[string]string
// @Router   /workspaces/{id}/members/{user_id} [patch]
func (h *WorkspaceMemberHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
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
	if !model.ValidWorkspaceRole(req.Role) {
		respondError(c, apperr.Validation("Invalid workspace role"))
		return
	}

	if _, err := h.authz.RequireWorkspaceRole(c.Request.Context(), workspaceID, userID, model.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	membership, err := h.memberRepo.GetActive(c.Request.Context(), workspaceID, targetID)
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
	if err := h.memberRepo.Update(c.Request.Context(), membership); err != nil {
		respondError(c, apperr.Internal("Failed to update role", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionWorkspaceMemberRoleChange, model.EntityWorkspace, workspaceID,
		map[string]interface{}{"workspace": workspaceID.String(), "member": targetID.String(), "role": req.Role})

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
