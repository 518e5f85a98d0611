package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mayaawwadd/taskflow/internal/authz"
	"github.com/mayaawwadd/taskflow/internal/handler"
	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type listFixture struct {
	router          *gin.Engine
	listRepo        *MockListRepository
	boardRepo       *MockBoardRepository
	boardMemberRepo *MockBoardMemberRepository
	userID          uuid.UUID
}

func setupListTest() *listFixture {
	gin.SetMode(gin.TestMode)
	f := &listFixture{
		listRepo:        new(MockListRepository),
		boardRepo:       new(MockBoardRepository),
		boardMemberRepo: new(MockBoardMemberRepository),
		userID:          uuid.New(),
	}

	authzSvc := authz.NewService(new(MockWorkspaceMemberRepository), f.boardMemberRepo)
	listHandler := handler.NewListHandler(f.listRepo, f.boardRepo, authzSvc, testNotifier())

	r := gin.New()
	r.Use(asUser(f.userID))
	r.POST("/boards/:id/lists", listHandler.Create)
	r.GET("/boards/:id/lists", listHandler.GetByBoard)
	r.PUT("/boards/:id/lists/reorder", listHandler.Reorder)
	r.DELETE("/lists/:id", listHandler.Delete)
	f.router = r
	return f
}

func (f *listFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f *listFixture) boardMembership(boardID uuid.UUID, role string) {
	membership := &model.BoardMember{BoardID: boardID, UserID: f.userID, Role: role}
	f.boardMemberRepo.On("GetActive", mock.Anything, boardID, f.userID).Return(membership, nil)
}

func TestListCreate_AppendsWithAssignedOrder(t *testing.T) {
	f := setupListTest()

	board := &model.Board{ID: uuid.New(), WorkspaceID: uuid.New()}
	f.boardMembership(board.ID, model.RoleMember)
	f.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	f.listRepo.On("CreateWithNextOrder", mock.Anything, mock.AnythingOfType("*model.List")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.List).Order = 3
		}).Return(nil)

	resp := f.do("POST", "/boards/"+board.ID.String()+"/lists", handler.CreateListRequest{Name: "Done"})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.ListResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Equal(t, "Done", response.Name)
	assert.Equal(t, 3, response.Order)
}

func TestListCreate_ViewerForbidden(t *testing.T) {
	f := setupListTest()

	boardID := uuid.New()
	f.boardMembership(boardID, model.RoleViewer)

	resp := f.do("POST", "/boards/"+boardID.String()+"/lists", handler.CreateListRequest{Name: "Done"})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	f.listRepo.AssertNotCalled(t, "CreateWithNextOrder")
}

func TestListGetByBoard_DisplayOrder(t *testing.T) {
	f := setupListTest()

	boardID := uuid.New()
	f.boardMembership(boardID, model.RoleViewer)
	lists := []model.List{
		{ID: uuid.New(), BoardID: boardID, Name: "Todo", Order: 1, CreatedBy: f.userID},
		{ID: uuid.New(), BoardID: boardID, Name: "Doing", Order: 2, CreatedBy: f.userID},
		{ID: uuid.New(), BoardID: boardID, Name: "Done", Order: 3, CreatedBy: f.userID},
	}
	f.listRepo.On("GetByBoard", mock.Anything, boardID).Return(lists, nil)

	resp := f.do("GET", "/boards/"+boardID.String()+"/lists", nil)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.ListResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &response)
	assert.Len(t, response, 3)
	assert.Equal(t, []string{"Todo", "Doing", "Done"},
		[]string{response[0].Name, response[1].Name, response[2].Name})
}

func TestListReorder_SequencePositionsBecomeOrder(t *testing.T) {
	f := setupListTest()

	board := &model.Board{ID: uuid.New(), WorkspaceID: uuid.New()}
	idC, idA, idB := uuid.New(), uuid.New(), uuid.New()

	f.boardMembership(board.ID, model.RoleMember)
	f.boardRepo.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	f.listRepo.On("Reorder", mock.Anything, board.ID, []uuid.UUID{idC, idA, idB}, f.userID).Return(nil)

	resp := f.do("PUT", "/boards/"+board.ID.String()+"/lists/reorder", handler.ReorderListsRequest{
		ListIDs: []string{idC.String(), idA.String(), idB.String()},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	f.listRepo.AssertExpectations(t)
}

func TestListReorder_MalformedIDRejected(t *testing.T) {
	f := setupListTest()

	boardID := uuid.New()
	resp := f.do("PUT", "/boards/"+boardID.String()+"/lists/reorder", handler.ReorderListsRequest{
		ListIDs: []string{"not-a-uuid"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	f.listRepo.AssertNotCalled(t, "Reorder")
}

func TestListDelete_Success(t *testing.T) {
	f := setupListTest()

	list := &model.List{ID: uuid.New(), BoardID: uuid.New(), Name: "Done", Order: 3}
	f.listRepo.On("GetByID", mock.Anything, list.ID).Return(list, nil)
	f.boardMembership(list.BoardID, model.RoleMember)
	f.listRepo.On("SoftDelete", mock.Anything, list.ID, f.userID).Return(nil)

	resp := f.do("DELETE", "/lists/"+list.ID.String(), nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	f.listRepo.AssertExpectations(t)
}

func TestListDelete_DeletedIs404(t *testing.T) {
	f := setupListTest()

	id := uuid.New()
	f.listRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	resp := f.do("DELETE", "/lists/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	f.listRepo.AssertNotCalled(t, "SoftDelete")
}
