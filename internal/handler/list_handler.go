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

type ListHandler struct {
	listRepo  repository.ListRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
	authz     *authz.Service
	notifier  *activity.Notifier
}

func NewListHandler(
	listRepo repository.ListRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	authzSvc *authz.Service,
	notifier *activity.Notifier,
) *ListHandler {
	return &ListHandler{
		listRepo:  listRepo,
		boardRepo: boardRepo,
		authz:     authzSvc,
		notifier:  notifier,
	}
}

type CreateListRequest struct {
	Name string `json:"name" binding:"required"`
}

type ReorderListsRequest struct {
	ListIDs []string `json:"list_ids" binding:"required,min=1"`
}

type ListResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

func listResponse(l *model.List) ListResponse {
	return ListResponse{
		ID:        l.ID.String(),
		BoardID:   l.BoardID.String(),
		Name:      l.Name,
		Order:     l.Order,
		CreatedBy: l.CreatedBy.String(),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

// Create appends a list at the end of the board. Viewers cannot create.
// @Summary  Create list
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    request body CreateListRequest true "List data"
// @Success  201 {object} ListResponse
// @Router   /boards/{id}/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("List name is required"))
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleMember); err != nil {
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

	list := &model.List{
		ID:        uuid.New(),
		BoardID:   boardID,
		Name:      req.Name,
		CreatedBy: userID,
	}
	if err := h.listRepo.CreateWithNextOrder(c.Request.Context(), list); err != nil {
		if err == repository.ErrBoardNotFound {
			respondError(c, apperr.NotFound("Board not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to create list", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionListCreated, model.EntityList, list.ID,
		map[string]interface{}{
			"workspace": board.WorkspaceID.String(),
			"board":     boardID.String(),
			"list":      list.ID.String(),
			"name":      list.Name,
		})

	c.JSON(http.StatusCreated, listResponse(list))
}

// GetByBoard returns the board's live lists in display order.
// @Summary  List lists in board
// @Tags     Lists
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Success  200 {array} ListResponse
// @Router   /boards/{id}/lists [get]
func (h *ListHandler) GetByBoard(c *gin.Context) {
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

	lists, err := h.listRepo.GetByBoard(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve lists", err))
		return
	}

	response := make([]ListResponse, len(lists))
	for i := range lists {
		response[i] = listResponse(&lists[i])
	}

	c.JSON(http.StatusOK, response)
}

// Reorder bulk-assigns order values from the id sequence in the request
// body: position in the sequence becomes the order, 1-based. Ids not
// belonging to the board, soft-deleted, or simply omitted are skipped
// without error.
// @Summary  Reorder lists
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Board ID"
// @Param    request body ReorderListsRequest true "Ordered list ids"
// @Success  200 {object} map[string]string
// @Router   /boards/{id}/lists/reorder [put]
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("list_ids is required"))
		return
	}

	listIDs := make([]uuid.UUID, 0, len(req.ListIDs))
	for _, raw := range req.ListIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, apperr.Validation("Invalid list ID in sequence"))
			return
		}
		listIDs = append(listIDs, id)
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), boardID, userID, model.RoleMember); err != nil {
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

	if err := h.listRepo.Reorder(c.Request.Context(), boardID, listIDs, userID); err != nil {
		respondError(c, apperr.Internal("Failed to reorder lists", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionListsReordered, model.EntityBoard, boardID,
		map[string]interface{}{
			"workspace": board.WorkspaceID.String(),
			"board":     boardID.String(),
			"count":     len(listIDs),
		})

	c.JSON(http.StatusOK, gin.H{"message": "Lists reordered"})
}

// Delete soft-deletes a list. Cards under it are untouched and simply stop
// being reachable through board reads.
// @Summary  Delete list
// @Tags     Lists
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "List ID"
// @Success  200 {object} map[string]string
// @Router   /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), listID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve list", err))
		return
	}
	if list == nil {
		respondError(c, apperr.NotFound("List not found"))
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), list.BoardID, userID, model.RoleMember); err != nil {
		respondError(c, err)
		return
	}

	if err := h.listRepo.SoftDelete(c.Request.Context(), listID, userID); err != nil {
		if err == repository.ErrListNotFound {
			respondError(c, apperr.NotFound("List not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to delete list", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionListDeleted, model.EntityList, listID,
		map[string]interface{}{"board": list.BoardID.String(), "list": listID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
