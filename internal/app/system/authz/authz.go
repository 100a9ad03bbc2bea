// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/forma-studio/forma/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, ObjectID, and a
// found flag. If no user is present, the user is degraded, or the user
// ID is malformed, it returns "visitor", "", NilObjectID, false — so
// ok=true always means a valid, fully resolved authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok || ident.Degraded {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(ident.Role), ident.Name, userID, true
}

// HasScope reports whether the current request's user holds the scope.
// Degraded identities never hold scopes.
func HasScope(r *http.Request, scope Scope) bool {
	role, _, _, ok := UserCtx(r)
	return ok && RoleHasScope(role, scope)
}

// IsSuperAdmin reports whether the current request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleSuperAdmin
}
