package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/forma-studio/forma/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoleHasScope(t *testing.T) {
	tests := []struct {
		role  string
		scope Scope
		want  bool
	}{
		{RoleSuperAdmin, ScopeUsersManage, true},
		{RoleAdmin, ScopeUsersManage, true},
		{RoleAdmin, ScopeContentWrite, true},
		{RoleEditor, ScopeContentWrite, true},
		{RoleEditor, ScopeUsersManage, false},
		{RoleViewer, ScopeContentRead, true},
		{RoleViewer, ScopeContentWrite, false},
		{"visitor", ScopeContentRead, false},
		{"", ScopeContentRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.scope.String(), func(t *testing.T) {
			if got := RoleHasScope(tt.role, tt.scope); got != tt.want {
				t.Errorf("RoleHasScope(%q, %v) = %v, want %v", tt.role, tt.scope, got, tt.want)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer} {
		if !IsValidRole(role) {
			t.Errorf("expected %q to be a valid role", role)
		}
	}
	if IsValidRole("wizard") {
		t.Error("expected unknown role to be invalid")
	}
}

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()

	r := httptest.NewRequest("GET", "/api/admin/projects", nil)
	r = auth.WithIdentity(r, &auth.Identity{ID: id.Hex(), Name: "Test Admin", Role: "Admin"})

	role, name, userID, ok := UserCtx(r)
	if !ok {
		t.Fatal("expected ok for valid identity")
	}
	if role != "admin" {
		t.Errorf("role = %q, want lowercased %q", role, "admin")
	}
	if name != "Test Admin" {
		t.Errorf("name = %q", name)
	}
	if userID != id {
		t.Errorf("userID = %v, want %v", userID, id)
	}
}

func TestUserCtxDegraded(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/admin/projects", nil)
	r = auth.WithIdentity(r, &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: RoleAdmin, Degraded: true})

	if _, _, _, ok := UserCtx(r); ok {
		t.Error("expected degraded identity to resolve as not-ok")
	}
	if HasScope(r, ScopeContentRead) {
		t.Error("expected degraded identity to hold no scopes")
	}
}

func TestUserCtxMalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithIdentity(r, &auth.Identity{ID: "not-an-object-id", Role: RoleAdmin})

	if _, _, _, ok := UserCtx(r); ok {
		t.Error("expected malformed user ID to fail closed")
	}
}
