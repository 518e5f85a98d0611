package handler

import (
	"net/http"
	"time"

	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/authz"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardRepo     repository.BoardRepositoryInterface
	workspaceRepo repository.WorkspaceRepositoryInterface
	authz         *authz.Service
	notifier      *activity.Notifier
}

func NewBoardHandler(
	boardRepo repository.BoardRepositoryInterface,
	workspaceRepo repository.WorkspaceRepositoryInterface,
	authzSvc *authz.Service,
	notifier *activity.Notifier,
) *BoardHandler {
	return &BoardHandler{
		boardRepo:     boardRepo,
		workspaceRepo: workspaceRepo,
		authz:         authzSvc,
		notifier:      notifier,
	}
}

type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

type BoardResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

func boardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID.String(),
		WorkspaceID: b.WorkspaceID.String(),
		Title:       b.Title,
		Description: b.Description,
		Visibility:  b.Visibility,
		CreatedBy:   b.CreatedBy.String(),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// Create makes a board in a workspace. Any active workspace member may
// create one; the creator becomes the board's owner member, both records
// written in one transaction.
// @Summary  Create board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Param    request body CreateBoardRequest true "Board data"
// @Success  201 {object} BoardResponse
// @Router   /workspaces/{id}/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Board title is required"))
		return
	}
	if req.Visibility == "" {
		req.Visibility = model.VisibilityWorkspace
	}
	if req.Visibility != model.VisibilityPrivate && req.Visibility != model.VisibilityWorkspace {
		respondError(c, apperr.Validation("Invalid visibility"))
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

	if _, err := h.authz.RequireWorkspaceMember(c.Request.Context(), workspaceID, userID); err != nil {
		respondError(c, err)
		return
	}

	board := &model.Board{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		CreatedBy:   userID,
	}
	owner := &model.BoardMember{
		ID:      uuid.New(),
		UserID:  userID,
		Role:    model.RoleOwner,
		AddedBy: userID,
	}

	if err := h.boardRepo.CreateWithOwner(c.Request.Context(), board, owner); err != nil {
		respondError(c, apperr.Internal("Failed to create board", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionBoardCreated, model.EntityBoard, board.ID,
		map[string]interface{}{"workspace": workspaceID.String(), "board": board.ID.String(), "title": board.Title})

	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetByWorkspace lists a workspace's live boards for active workspace
// members.
// @Summary  List boards in workspace
// @Tags     Boards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Workspace ID"
// @Success  200 {array} BoardResponse
// @Router   /workspaces/{id}/boards [get]
func (h *BoardHandler) GetByWorkspace(c *gin.Context) {
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

	boards, err := h.boardRepo.GetByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve boards", err))
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID returns one board. Access is decided by board membership alone:
// board reads do not consult workspace membership.
// @Summary  Get board
// @Tags     Boards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Success  200 {object} BoardResponse
// @Router   /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
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

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve board", err))
		return
	}
	if board == nil {
		respondError(c, apperr.NotFound("Board not found"))
		return
	}

	c.JSON(http.StatusOK, boardResponse(board))
}

// Delete soft-deletes a board. Only the board's owner-role member may do
// this. Lists and cards are not cascaded.
// @Summary  Delete board
// @Tags     Boards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Success  200 {object} map[string]string
// @Router   /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleOwner); err != nil {
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

	now := time.Now()
	board.IsDeleted = true
	board.DeletedAt = &now
	board.UpdatedBy = &userID
	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		respondError(c, apperr.Internal("Failed to delete board", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionBoardDeleted, model.EntityBoard, boardID,
		map[string]interface{}{"workspace": board.WorkspaceID.String(), "board": boardID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
