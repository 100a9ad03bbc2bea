// Package auth owns the session layer: cookie-backed sessions, the
// request identity, and the middleware that resolves a session into a
// fresh user profile on every request.
//
// The session cookie stores only the user ID. The profile (name, email,
// role, status) is re-fetched per request through a UserFetcher so role
// changes and disabled accounts take effect immediately. When that
// lookup fails for a reason other than "no such user", the request
// carries an explicit Degraded identity — it is logged, holds no
// scopes, and privileged routes refuse it. No permissive fallback
// profile is ever synthesized.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// Identity is the resolved user attached to a request context.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string

	// Degraded marks an identity whose session was valid but whose
	// profile could not be loaded. It carries no permissions.
	Degraded bool
}

// ErrUserNotFound is returned by a UserFetcher when the session's user
// no longer exists. The session is treated as signed out.
var ErrUserNotFound = errors.New("user not found")

// UserFetcher loads a fresh Identity for a user ID on each request.
type UserFetcher interface {
	FetchByID(ctx context.Context, id string) (*Identity, error)
}

type ctxKey string

const currentIdentityKey ctxKey = "currentIdentity"

// CurrentIdentity returns the request identity and a found flag.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	ident, ok := r.Context().Value(currentIdentityKey).(*Identity)
	return ident, ok
}

// WithIdentity returns a request whose context carries the identity.
// Exported for handler tests.
func WithIdentity(r *http.Request, ident *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentIdentityKey, ident))
}

// SessionManager issues and resolves session cookies.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager with signed cookies.
func NewSessionManager(key, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(key) < 32 {
		return nil, errors.New("session key must be at least 32 bytes")
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the per-request profile loader.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// SignIn records the user in the session cookie. A request carrying an
// undecodable cookie (rotated key, tampering) still signs in on a fresh
// session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			sm.log.Warn("session cookie invalid, issuing fresh session", zap.Error(err))
		} else {
			sm.log.Error("session store error during sign-in, issuing fresh session", zap.Error(err))
		}
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser resolves the session cookie into an Identity and
// injects it into the request context. Requests without a valid session
// pass through with no identity.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)

		isAuth, _ := sess.Values[isAuthKey].(bool)
		userID, _ := sess.Values[userIDKey].(string)
		if !isAuth || userID == "" || sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		ident, err := sm.fetcher.FetchByID(r.Context(), userID)
		switch {
		case err == nil:
			r = WithIdentity(r, ident)
		case errors.Is(err, ErrUserNotFound):
			// Stale session for a deleted user: treat as signed out.
			sm.log.Info("session user no longer exists", zap.String("user_id", userID))
		default:
			// Store failure. Mark the request degraded rather than
			// guessing at a profile; privileged routes refuse it.
			sm.log.Warn("profile lookup failed, request degraded",
				zap.String("user_id", userID),
				zap.Error(err))
			r = WithIdentity(r, &Identity{ID: userID, Degraded: true})
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests without an identity with a 401 JSON
// error. Degraded identities pass here; scope checks refuse them with
// a clearer status.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			httpapi.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
