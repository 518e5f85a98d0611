package handler_test

import (
	"context"

	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/middleware"
	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) CreateWithOwner(ctx context.Context, workspace *model.Workspace, owner *model.WorkspaceMember) error {
	args := m.Called(ctx, workspace, owner)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	workspace := args.Get(0)
	if workspace == nil {
		return nil, args.Error(1)
	}
	return workspace.(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	args := m.Called(ctx, userID)
	workspaces := args.Get(0)
	if workspaces == nil {
		return nil, args.Error(1)
	}
	return workspaces.([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkspaceMemberRepository struct {
	mock.Mock
}

func (m *MockWorkspaceMemberRepository) GetActive(ctx context.Context, workspaceID, userID uuid.UUID) (*model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) ListActive(ctx context.Context, workspaceID uuid.UUID) ([]model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	members := args.Get(0)
	if members == nil {
		return nil, args.Error(1)
	}
	return members.([]model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) Invite(ctx context.Context, workspaceID, userID uuid.UUID, role string, addedBy uuid.UUID) (*model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID, role, addedBy)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceMemberRepository) Update(ctx context.Context, member *model.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithOwner(ctx context.Context, board *model.Board, owner *model.BoardMember) error {
	args := m.Called(ctx, board, owner)
	return args.Error(0)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, workspaceID)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Error(1)
	}
	return boards.([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

type MockBoardMemberRepository struct {
	mock.Mock
}

func (m *MockBoardMemberRepository) GetActive(ctx context.Context, boardID, userID uuid.UUID) (*model.BoardMember, error) {
	args := m.Called(ctx, boardID, userID)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) ListActive(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	args := m.Called(ctx, boardID)
	members := args.Get(0)
	if members == nil {
		return nil, args.Error(1)
	}
	return members.([]model.BoardMember), args.Error(1)
}

func (m *MockBoardMemberRepository) Invite(ctx context.Context, member *model.BoardMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockBoardMemberRepository) Update(ctx context.Context, member *model.BoardMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) CreateWithNextOrder(ctx context.Context, list *model.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	args := m.Called(ctx, id)
	list := args.Get(0)
	if list == nil {
		return nil, args.Error(1)
	}
	return list.(*model.List), args.Error(1)
}

func (m *MockListRepository) GetByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	args := m.Called(ctx, boardID)
	lists := args.Get(0)
	if lists == nil {
		return nil, args.Error(1)
	}
	return lists.([]model.List), args.Error(1)
}

func (m *MockListRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockListRepository) Reorder(ctx context.Context, boardID uuid.UUID, listIDs []uuid.UUID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, boardID, listIDs, updatedBy)
	return args.Error(0)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) CreateWithNextOrder(ctx context.Context, card *model.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, id)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockCardRepository) GetByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, listID)
	cards := args.Get(0)
	if cards == nil {
		return nil, args.Error(1)
	}
	return cards.([]model.Card), args.Error(1)
}

func (m *MockCardRepository) Move(ctx context.Context, cardID, listID uuid.UUID, order int, updatedBy uuid.UUID) error {
	args := m.Called(ctx, cardID, listID, order, updatedBy)
	return args.Error(0)
}

func (m *MockCardRepository) SoftDelete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, entry *model.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) ListForBoard(ctx context.Context, boardID uuid.UUID, limit int) ([]model.ActivityLog, error) {
	args := m.Called(ctx, boardID, limit)
	entries := args.Get(0)
	if entries == nil {
		return nil, args.Error(1)
	}
	return entries.([]model.ActivityLog), args.Error(1)
}

func (m *MockActivityRepository) ListForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]model.ActivityLog, error) {
	args := m.Called(ctx, workspaceID, limit)
	entries := args.Get(0)
	if entries == nil {
		return nil, args.Error(1)
	}
	return entries.([]model.ActivityLog), args.Error(1)
}

// testNotifier returns a notifier whose storage accepts anything. Tests
// that assert on recorded activity build their own instead.
func testNotifier() *activity.Notifier {
	repo := new(MockActivityRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	return activity.NewNotifier(repo, zap.NewNop())
}

// asUser injects an authenticated caller the way the JWT middleware would.
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}
