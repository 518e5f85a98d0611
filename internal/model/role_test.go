package model_test

import (
	"testing"

	"github.com/mayaawwadd/taskflow/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		name string
		have string
		need string
		want bool
	}{
		{"owner satisfies admin", model.RoleOwner, model.RoleAdmin, true},
		{"owner satisfies member", model.RoleOwner, model.RoleMember, true},
		{"owner satisfies viewer", model.RoleOwner, model.RoleViewer, true},
		{"admin satisfies admin", model.RoleAdmin, model.RoleAdmin, true},
		{"admin does not satisfy owner", model.RoleAdmin, model.RoleOwner, false},
		{"member does not satisfy admin", model.RoleMember, model.RoleAdmin, false},
		{"member satisfies viewer", model.RoleMember, model.RoleViewer, true},
		{"viewer satisfies viewer", model.RoleViewer, model.RoleViewer, true},
		{"viewer does not satisfy member", model.RoleViewer, model.RoleMember, false},
		{"no membership satisfies nothing", "", model.RoleViewer, false},
		{"unknown role satisfies nothing", "superuser", model.RoleViewer, false},
		{"unknown requirement is never met", model.RoleOwner, "superuser", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.RoleSatisfies(tt.have, tt.need))
		})
	}
}

func TestValidAssignableRoles(t *testing.T) {
	// Owner may never be handed out through invite or role change.
	assert.False(t, model.ValidWorkspaceRole(model.RoleOwner))
	assert.False(t, model.ValidBoardRole(model.RoleOwner))

	assert.True(t, model.ValidWorkspaceRole(model.RoleAdmin))
	assert.True(t, model.ValidWorkspaceRole(model.RoleMember))
	assert.False(t, model.ValidWorkspaceRole(model.RoleViewer))

	assert.True(t, model.ValidBoardRole(model.RoleAdmin))
	assert.True(t, model.ValidBoardRole(model.RoleMember))
	assert.True(t, model.ValidBoardRole(model.RoleViewer))
}
