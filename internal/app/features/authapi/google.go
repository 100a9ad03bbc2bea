// internal/app/features/authapi/google.go
package authapi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/forma-studio/forma/internal/app/system/status"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const adminHome = "/admin"

/*─────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                     |
| Redirects to Google's consent screen with a one-time state token.    |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.GoogleConfigured() {
		h.Log.Warn("Google OAuth not configured")
		h.redirectWithError(w, r, "google_not_configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		h.redirectWithError(w, r, "internal")
		return
	}

	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.States.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.redirectWithError(w, r, "internal")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                            |
| Validates the state, exchanges the code, matches the Google account  |
| to an existing user by email, and starts a session.                  |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.redirectWithError(w, r, "google_denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		h.redirectWithError(w, r, "invalid_state")
		return
	}

	ctxShort, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.States.Validate(ctxShort, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.redirectWithError(w, r, "internal")
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.redirectWithError(w, r, "invalid_state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		h.redirectWithError(w, r, "invalid_code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.redirectWithError(w, r, "token_exchange")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.redirectWithError(w, r, "user_info")
		return
	}

	// Accounts are created by an admin ahead of time; sign-in only
	// matches existing users by email.
	u, err := h.Users.GetByEmail(ctxShort, googleUser.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.Log.Info("Google OAuth: no account for email",
				zap.String("email", googleUser.Email))
			h.redirectWithError(w, r, "no_account")
			return
		}
		h.Log.Error("failed to look up user", zap.Error(err))
		h.redirectWithError(w, r, "internal")
		return
	}
	if u.Status != status.Active {
		h.Log.Info("Google OAuth: account disabled",
			zap.String("user_id", u.ID.Hex()),
			zap.String("email", u.Email))
		h.redirectWithError(w, r, "account_disabled")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session failed",
			zap.Error(err),
			zap.String("user_id", u.ID.Hex()))
		h.redirectWithError(w, r, "session")
		return
	}

	if err := h.Users.TouchLastLogin(ctxShort, u.ID); err != nil {
		h.Log.Warn("failed to record last login",
			zap.String("user_id", u.ID.Hex()),
			zap.Error(err))
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", adminHome), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────*
| Helpers                                                              |
*─────────────────────────────────────────────────────────────────────*/

// googleUserInfo is the subset of Google's userinfo response we use.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// redirectWithError sends the browser back to the admin login screen
// with a machine-readable error code the UI can translate.
func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, adminHome+"/login?error="+code, http.StatusSeeOther)
}
