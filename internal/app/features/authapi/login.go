// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/ratelimit"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identityResponse is the JSON shape for the signed-in user, shared by
// login and /auth/me.
type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

/*─────────────────────────────────────────────────────────────────────*
| POST /auth/login                                                     |
*─────────────────────────────────────────────────────────────────────*/

// HandleLogin checks an email/password pair and starts a session.
// Unknown accounts, wrong passwords and disabled accounts all produce
// the same 401 so the response does not reveal which one it was.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ip := ratelimit.ClientIP(r)
	if h.LoginLimiter != nil && !h.LoginLimiter.Allow(ip) {
		h.Log.Warn("login rate limited", zap.String("ip", ip))
		httpapi.WriteError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidCredentials) {
			httpapi.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		httpapi.WriteServerError(w, h.Log, "login failed", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		httpapi.WriteServerError(w, h.Log, "could not start session", err)
		return
	}

	if h.LoginLimiter != nil {
		h.LoginLimiter.Reset(ip)
	}

	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		h.Log.Warn("failed to record last login",
			zap.String("user_id", u.ID.Hex()),
			zap.Error(err))
	}

	h.Log.Info("user logged in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email))

	httpapi.WriteJSON(w, http.StatusOK, identityResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	})
}

/*─────────────────────────────────────────────────────────────────────*
| POST /auth/logout                                                    |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		httpapi.WriteServerError(w, h.Log, "could not end session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*─────────────────────────────────────────────────────────────────────*
| GET /auth/me                                                         |
*─────────────────────────────────────────────────────────────────────*/

// ServeMe returns the identity behind the current session. A degraded
// identity answers 503: the session is valid but the profile could not
// be loaded, so nothing about the user can be asserted.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.CurrentIdentity(r)
	if !ok {
		httpapi.WriteError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if ident.Degraded {
		httpapi.WriteErrorBody(w, http.StatusServiceUnavailable, httpapi.ErrorBody{
			Error: "identity temporarily unavailable",
			Hint:  "the user store did not answer; no permissions are assumed in this state",
		})
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, identityResponse{
		ID:    ident.ID,
		Name:  ident.Name,
		Email: ident.Email,
		Role:  ident.Role,
	})
}
