// internal/app/features/authapi/handler.go
package authapi

import (
	"time"

	oauthstatestore "github.com/forma-studio/forma/internal/app/store/oauthstate"
	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler owns the authentication surface: password login, logout, the
// current-identity endpoint, and the Google OAuth flow for the admin
// panel.
type Handler struct {
	Users      *userstore.Store
	States     *oauthstatestore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger

	// LoginLimiter throttles password attempts per client IP.
	LoginLimiter *ratelimit.Limiter

	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewHandler creates the authentication handler. baseURL is the public
// origin of the deployment, used to build the OAuth redirect URL.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        userstore.New(db),
		States:       oauthstatestore.New(db),
		SessionMgr:   sessionMgr,
		Log:          logger,
		LoginLimiter: ratelimit.New(10, 15*time.Minute),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleConfigured reports whether Google sign-in credentials are set.
func (h *Handler) GoogleConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}
