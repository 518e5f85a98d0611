// Package authz is the single place membership turns into permission.
// Every mutation makes exactly one authorization call here before touching
// state, and gets back either the caller's role or a taxonomy error.
package authz

import (
	"context"

	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	workspaceMembers repository.WorkspaceMemberRepositoryInterface
	boardMembers     repository.BoardMemberRepositoryInterface
}

func NewService(
	workspaceMembers repository.WorkspaceMemberRepositoryInterface,
	boardMembers repository.BoardMemberRepositoryInterface,
) *Service {
	return &Service{
		workspaceMembers: workspaceMembers,
		boardMembers:     boardMembers,
	}
}

// WorkspaceRole returns the user's active role in the workspace, or ""
// when none. Soft-deleted memberships confer nothing.
func (s *Service) WorkspaceRole(ctx context.Context, workspaceID, userID uuid.UUID) (string, error) {
	member, err := s.workspaceMembers.GetActive(ctx, workspaceID, userID)
	if err != nil {
		return "", apperr.Internal("Failed to check workspace membership", err)
	}
	if member == nil {
		return "", nil
	}
	return member.Role, nil
}

// BoardRole returns the user's active role on the board, or "" when none.
func (s *Service) BoardRole(ctx context.Context, boardID, userID uuid.UUID) (string, error) {
	member, err := s.boardMembers.GetActive(ctx, boardID, userID)
	if err != nil {
		return "", apperr.Internal("Failed to check board membership", err)
	}
	if member == nil {
		return "", nil
	}
	return member.Role, nil
}

// RequireWorkspaceRole fails with Forbidden unless the user's workspace
// role satisfies need. The role held is returned for handlers that branch
// on it.
func (s *Service) RequireWorkspaceRole(ctx context.Context, workspaceID, userID uuid.UUID, need string) (string, error) {
	role, err := s.WorkspaceRole(ctx, workspaceID, userID)
	if err != nil {
		return "", err
	}
	if !model.RoleSatisfies(role, need) {
		return "", apperr.Forbidden("You don't have permission to perform this action in the workspace")
	}
	return role, nil
}

// RequireBoardRole fails with Forbidden unless the user's board role
// satisfies need.
func (s *Service) RequireBoardRole(ctx context.Context, boardID, userID uuid.UUID, need string) (string, error) {
	role, err := s.BoardRole(ctx, boardID, userID)
	if err != nil {
		return "", err
	}
	if !model.RoleSatisfies(role, need) {
		return "", apperr.Forbidden("You don't have permission to perform this action on the board")
	}
	return role, nil
}

// RequireWorkspaceMember admits any active membership.
func (s *Service) RequireWorkspaceMember(ctx context.Context, workspaceID, userID uuid.UUID) (string, error) {
	return s.RequireWorkspaceRole(ctx, workspaceID, userID, model.RoleMember)
}

// RequireBoardMember admits any active membership, viewer included.
func (s *Service) RequireBoardMember(ctx context.Context, boardID, userID uuid.UUID) (string, error) {
	return s.RequireBoardRole(ctx, boardID, userID, model.RoleViewer)
}
