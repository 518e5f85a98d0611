package handler

import (
	"net/http"
	"time"

	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceHandler struct {
	workspaceRepo repository.WorkspaceRepositoryInterface
	notifier      *activity.Notifier
}

func NewWorkspaceHandler(workspaceRepo repository.WorkspaceRepositoryInterface, notifier *activity.Notifier) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceRepo: workspaceRepo,
		notifier:      notifier,
	}
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type WorkspaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
	CreatedAt   string `json:"created_at"`
}

func workspaceResponse(w *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          w.ID.String(),
		Name:        w.Name,
		Description: w.Description,
		OwnerID:     w.OwnerID.String(),
		CreatedAt:   w.CreatedAt.Format(time.RFC3339),
	}
}

// Create makes a new workspace with the caller as owner, both the record
// and the owner membership in one transaction.
// @Summary  Create workspace
// @Tags     Workspaces
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body CreateWorkspaceRequest true "Workspace data"
// @Success  201 {object} WorkspaceResponse
// @Router   /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Workspace name is required"))
		return
	}

	workspace := &model.Workspace{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}
	owner := &model.WorkspaceMember{
		ID:      uuid.New(),
		UserID:  userID,
		Role:    model.RoleOwner,
		AddedBy: &userID,
	}

	if err := h.workspaceRepo.CreateWithOwner(c.Request.Context(), workspace, owner); err != nil {
		respondError(c, apperr.Internal("Failed to create workspace", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionWorkspaceCreated, model.EntityWorkspace, workspace.ID,
		map[string]interface{}{"workspace": workspace.ID.String(), "name": workspace.Name})

	c.JSON(http.StatusCreated, workspaceResponse(workspace))
}

// GetMine lists the workspaces where the caller holds an active
// membership.
// @Summary  List my workspaces
// @Tags     Workspaces
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} WorkspaceResponse
// @Router   /workspaces [get]
func (h *WorkspaceHandler) GetMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceRepo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve workspaces", err))
		return
	}

	response := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = workspaceResponse(&workspaces[i])
	}

	c.JSON(http.StatusOK, response)
}

// Delete soft-deletes the workspace. Only the workspace's owner (the
// owner field itself, not an owner-role membership) may do this. Child
// boards are not cascaded; they become unreachable through traversal.
// @Summary  Delete workspace
// @Tags     Workspaces
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Success  200 {object} map[string]string
// @Router   /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	workspace, err := h.workspaceRepo.GetByID(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve workspace", err))
		return
	}
	if workspace == nil {
		respondError(c, apperr.NotFound("Workspace not found"))
		return
	}

	if workspace.OwnerID != userID {
		respondError(c, apperr.Forbidden("Only the workspace owner can delete the workspace"))
		return
	}

	if err := h.workspaceRepo.SoftDelete(c.Request.Context(), workspaceID); err != nil {
		if err == repository.ErrWorkspaceNotFound {
			respondError(c, apperr.NotFound("Workspace not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to delete workspace", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionWorkspaceDeleted, model.EntityWorkspace, workspaceID,
		map[string]interface{}{"workspace": workspaceID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}
