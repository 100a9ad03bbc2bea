package authapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forma-studio/forma/internal/app/features/authapi"
	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/ratelimit"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/forma-studio/forma/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) (*authapi.Handler, *auth.SessionManager) {
	t.Helper()

	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "forma_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	sm.SetUserFetcher(userstore.NewFetcher(db))

	h := authapi.NewHandler(db, sm, "", "", "http://localhost:8080", zap.NewNop())
	return h, sm
}

func createUser(t *testing.T, db *mongo.Database, email, password, st string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := userstore.New(db).Create(ctx, models.User{
		FullName: "Test User",
		Email:    email,
		Role:     "editor",
		Status:   st,
	}, password)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return u
}

func TestHandleLogin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	u := createUser(t, db, "editor@forma.studio", "correct horse", "active")

	body := strings.NewReader(`{"email":"editor@forma.studio","password":"correct horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != u.ID.Hex() {
		t.Errorf("id: got %q, want %q", got.ID, u.ID.Hex())
	}
	if got.Role != "editor" {
		t.Errorf("role: got %q, want editor", got.Role)
	}

	if cookies := rec.Result().Cookies(); len(cookies) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	createUser(t, db, "editor@forma.studio", "correct horse", "active")

	body := strings.NewReader(`{"email":"editor@forma.studio","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestHandleLogin_DisabledAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	createUser(t, db, "gone@forma.studio", "correct horse", "disabled")

	body := strings.NewReader(`{"email":"gone@forma.studio","password":"correct horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	// Same answer as a wrong password so the response does not leak
	// account state.
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	h.LoginLimiter = ratelimit.New(2, time.Minute)
	createUser(t, db, "editor@forma.studio", "correct horse", "active")

	for i := 0; i < 2; i++ {
		body := strings.NewReader(`{"email":"editor@forma.studio","password":"wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want 401", i+1, rec.Code)
		}
	}

	body := strings.NewReader(`{"email":"editor@forma.studio","password":"correct horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status: got %d, want 429", rec.Code)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	body := strings.NewReader(`{"email":"","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestHandleLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
}

func TestServeMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = testutil.WithIdentity(req, "abc123", "Mara Voss", "admin")
		rec := httptest.NewRecorder()
		h.ServeMe(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		var got struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.ID != "abc123" || got.Name != "Mara Voss" {
			t.Errorf("identity: got %+v", got)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rec := httptest.NewRecorder()
		h.ServeMe(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})

	t.Run("degraded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = testutil.WithDegradedIdentity(req, "abc123")
		rec := httptest.NewRecorder()
		h.ServeMe(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want 503", rec.Code)
		}
	})
}

func TestServeGoogleLogin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "error=google_not_configured") {
		t.Errorf("location: got %q, want google_not_configured error", loc)
	}
}

func TestServeGoogleLogin_RedirectsToGoogle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(strings.Repeat("k", 32), "forma_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := authapi.NewHandler(db, sm, "client-id", "client-secret", "http://localhost:8080", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/google?return=/admin/projects", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status: got %d, want 307", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") {
		t.Errorf("location: got %q, want Google consent URL", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("location: got %q, want a state parameter", loc)
	}
}

func TestServeGoogleCallback_InvalidState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=never-saved&code=x", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("location: got %q, want invalid_state error", loc)
	}
}

func TestServeGoogleCallback_ProviderError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=google_denied") {
		t.Errorf("location: got %q, want google_denied error", loc)
	}
}
