// internal/app/system/authz/scopes.go
package authz

// Scope is a closed set of permissions an authenticated user may hold.
// Handlers check scopes, never role strings, so the role-to-scope table
// below is the single place access rules live.
type Scope int

const (
	// ScopeContentRead covers admin read access to all entities,
	// including drafts the public API hides.
	ScopeContentRead Scope = iota
	// ScopeContentWrite covers create/update/delete of content entities
	// (projects, team, services, careers, explore, partners).
	ScopeContentWrite
	// ScopeMediaWrite covers uploading and deleting media assets.
	ScopeMediaWrite
	// ScopeUsersManage covers admin user CRUD and role changes.
	ScopeUsersManage
)

// String returns the scope name for logging.
func (s Scope) String() string {
	switch s {
	case ScopeContentRead:
		return "content:read"
	case ScopeContentWrite:
		return "content:write"
	case ScopeMediaWrite:
		return "media:write"
	case ScopeUsersManage:
		return "users:manage"
	default:
		return "unknown"
	}
}

// Roles understood by the system. Role strings are stored lowercased.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// roleScopes is the explicit role-to-scope table. A role not listed
// here has no scopes at all.
var roleScopes = map[string][]Scope{
	RoleSuperAdmin: {ScopeContentRead, ScopeContentWrite, ScopeMediaWrite, ScopeUsersManage},
	RoleAdmin:      {ScopeContentRead, ScopeContentWrite, ScopeMediaWrite, ScopeUsersManage},
	RoleEditor:     {ScopeContentRead, ScopeContentWrite, ScopeMediaWrite},
	RoleViewer:     {ScopeContentRead},
}

// RoleHasScope reports whether the given role grants the scope.
func RoleHasScope(role string, scope Scope) bool {
	for _, s := range roleScopes[role] {
		if s == scope {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role is one the role table knows about.
func IsValidRole(role string) bool {
	_, ok := roleScopes[role]
	return ok
}
