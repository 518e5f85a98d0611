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

type CardHandler struct {
	cardRepo repository.CardRepositoryInterface
	listRepo repository.ListRepositoryInterface
	authz    *authz.Service
	notifier *activity.Notifier
}

func NewCardHandler(
	cardRepo repository.CardRepositoryInterface,
	listRepo repository.ListRepositoryInterface,
	authzSvc *authz.Service,
	notifier *activity.Notifier,
) *CardHandler {
	return &CardHandler{
		cardRepo: cardRepo,
		listRepo: listRepo,
		authz:    authzSvc,
		notifier: notifier,
	}
}

type CreateCardRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	StartDate       *time.Time `json:"start_date"`
	DueDate         *time.Time `json:"due_date"`
	DueDateReminder string     `json:"due_date_reminder"`
	AssignedTo      *string    `json:"assigned_to"`
}

type MoveCardRequest struct {
	ListID string `json:"list_id" binding:"required"`
	Order  int    `json:"order" binding:"required,min=1"`
}

type CardResponse struct {
	ID              string     `json:"id"`
	ListID          string     `json:"list_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	DueDateReminder string     `json:"due_date_reminder"`
	Order           int        `json:"order"`
	AssignedTo      *string    `json:"assigned_to,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       string     `json:"created_at"`
}

func cardResponse(card *model.Card) CardResponse {
	resp := CardResponse{
		ID:              card.ID.String(),
		ListID:          card.ListID.String(),
		Name:            card.Name,
		Description:     card.Description,
		StartDate:       card.StartDate,
		DueDate:         card.DueDate,
		DueDateReminder: card.DueDateReminder,
		Order:           card.Order,
		CreatedBy:       card.CreatedBy.String(),
		CreatedAt:       card.CreatedAt.Format(time.RFC3339),
	}
	if card.AssignedTo != nil {
		s := card.AssignedTo.String()
		resp.AssignedTo = &s
	}
	return resp
}

func validReminder(r string) bool {
	switch r {
	case model.ReminderNone, model.Reminder1Day, model.Reminder1Hour, model.Reminder30Min:
		return true
	}
	return false
}

// Create appends a card at the end of a list. The list must be live and
// the caller a member (not viewer) of the list's board.
// @Summary  Create card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "List ID"
// @Param    request body CreateCardRequest true "Card data"
// @Success  201 {object} CardResponse
// @Router   /lists/{id}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Card name is required"))
		return
	}
	if req.DueDateReminder == "" {
		req.DueDateReminder = model.ReminderNone
	}
	if !validReminder(req.DueDateReminder) {
		respondError(c, apperr.Validation("Invalid due date reminder"))
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

	card := &model.Card{
		ID:              uuid.New(),
		ListID:          listID,
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		DueDateReminder: req.DueDateReminder,
		CreatedBy:       userID,
	}
	if req.AssignedTo != nil {
		assignee, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			respondError(c, apperr.Validation("Invalid assignee ID"))
			return
		}
		card.AssignedTo = &assignee
	}

	if err := h.cardRepo.CreateWithNextOrder(c.Request.Context(), card); err != nil {
		if err == repository.ErrListNotFound {
			respondError(c, apperr.NotFound("List not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to create card", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionCardCreated, model.EntityCard, card.ID,
		map[string]interface{}{
			"board": list.BoardID.String(),
			"list":  listID.String(),
			"card":  card.ID.String(),
			"name":  card.Name,
		})

	c.JSON(http.StatusCreated, cardResponse(card))
}

// GetByList returns the list's live cards in display order.
// @Summary  List cards in list
// @Tags     Cards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "List ID"
// @Success  200 {array} CardResponse
// @Router   /lists/{id}/cards [get]
func (h *CardHandler) GetByList(c *gin.Context) {
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

	if _, err := h.authz.RequireBoardMember(c.Request.Context(), list.BoardID, userID); err != nil {
		respondError(c, err)
		return
	}

	cards, err := h.cardRepo.GetByList(c.Request.Context(), listID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve cards", err))
		return
	}

	response := make([]CardResponse, len(cards))
	for i := range cards {
		response[i] = cardResponse(&cards[i])
	}

	c.JSON(http.StatusOK, response)
}

// Move relocates a card to a target list and order position, within or
// across lists of the same board. The order comes from the client's
// re-sorted view; the update is a single write and the last writer wins.
// @Summary  Move card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Card ID"
// @Param    request body MoveCardRequest true "Target position"
// @Success  200 {object} map[string]string
// @Router   /cards/{id}/move [put]
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("list_id and order are required"))
		return
	}
	targetListID, err := uuid.Parse(req.ListID)
	if err != nil {
		respondError(c, apperr.Validation("Invalid target list ID"))
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve card", err))
		return
	}
	if card == nil {
		respondError(c, apperr.NotFound("Card not found"))
		return
	}

	targetList, err := h.listRepo.GetByID(c.Request.Context(), targetListID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve list", err))
		return
	}
	if targetList == nil {
		respondError(c, apperr.NotFound("Target list not found"))
		return
	}

	if _, err := h.authz.RequireBoardRole(c.Request.Context(), targetList.BoardID, userID, model.RoleMember); err != nil {
		respondError(c, err)
		return
	}

	if err := h.cardRepo.Move(c.Request.Context(), cardID, targetListID, req.Order, userID); err != nil {
		if err == repository.ErrCardNotFound {
			respondError(c, apperr.NotFound("Card not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to move card", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionCardMoved, model.EntityCard, cardID,
		map[string]interface{}{
			"board":     targetList.BoardID.String(),
			"card":      cardID.String(),
			"from_list": card.ListID.String(),
			"to_list":   targetListID.String(),
			"order":     req.Order,
		})

	c.JSON(http.StatusOK, gin.H{"message": "Card moved"})
}

// Delete soft-deletes a card, recording who deleted it.
// @Summary  Delete card
// @Tags     Cards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Card ID"
// @Success  200 {object} map[string]string
// @Router   /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to retrieve card", err))
		return
	}
	if card == nil {
		respondError(c, apperr.NotFound("Card not found"))
		return
	}

	list, err := h.listRepo.GetByID(c.Request.Context(), card.ListID)
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

	if err := h.cardRepo.SoftDelete(c.Request.Context(), cardID, userID); err != nil {
		if err == repository.ErrCardNotFound {
			respondError(c, apperr.NotFound("Card not found"))
			return
		}
		respondError(c, apperr.Internal("Failed to delete card", err))
		return
	}

	h.notifier.Record(c.Request.Context(), userID, model.ActionCardDeleted, model.EntityCard, cardID,
		map[string]interface{}{"board": list.BoardID.String(), "list": card.ListID.String(), "card": cardID.String()})

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
