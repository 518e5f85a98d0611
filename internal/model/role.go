package model

// Roles within a workspace (owner > admin > member) and within a board
// (owner > admin > member > viewer).
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// roleRank orders roles across both scopes; a higher rank satisfies any
// lower requirement. Viewer only exists at board scope.
var roleRank = map[string]int{
	RoleOwner:  4,
	RoleAdmin:  3,
	RoleMember: 2,
	RoleViewer: 1,
}

// RoleSatisfies reports whether role `have` meets or exceeds `need`.
// Unknown roles (including the empty "no membership" string) never satisfy
// anything.
func RoleSatisfies(have, need string) bool {
	h, ok := roleRank[have]
	if !ok {
		return false
	}
	n, ok := roleRank[need]
	if !ok {
		return false
	}
	return h >= n
}

// ValidWorkspaceRole reports whether r can be assigned at workspace scope.
func ValidWorkspaceRole(r string) bool {
	return r == RoleAdmin || r == RoleMember
}

// ValidBoardRole reports whether r can be assigned at board scope. Owner is
// excluded from both: it is set once at creation and never reassigned.
func ValidBoardRole(r string) bool {
	return r == RoleAdmin || r == RoleMember || r == RoleViewer
}
