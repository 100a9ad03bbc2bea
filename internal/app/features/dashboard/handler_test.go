package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forma-studio/forma/internal/app/features/dashboard"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"github.com/forma-studio/forma/internal/testutil"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestServeStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateProject(ctx, "Harbor House", "published")
	f.CreateProject(ctx, "Draft Tower", "draft")
	f.CreateTeamMember(ctx, "Mara Voss", "active")

	h := dashboard.NewHandler(db, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var counts struct {
		Projects          int64 `json:"projects"`
		PublishedProjects int64 `json:"published_projects"`
		TeamMembers       int64 `json:"team_members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if counts.Projects != 2 {
		t.Errorf("projects: got %d, want 2", counts.Projects)
	}
	if counts.PublishedProjects != 1 {
		t.Errorf("published_projects: got %d, want 1", counts.PublishedProjects)
	}
	if counts.TeamMembers != 1 {
		t.Errorf("team_members: got %d, want 1", counts.TeamMembers)
	}
}

func TestServeFeed_DeliversEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)

	feed := changefeed.New(16, zap.NewNop())
	defer feed.Close()

	h := dashboard.NewHandler(db, feed, zap.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(h.ServeFeed))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// The subscription attaches inside the handler goroutine; give it a
	// moment before publishing.
	time.Sleep(100 * time.Millisecond)

	feed.Publish(changefeed.Event{
		Entity: "projects",
		Op:     changefeed.OpCreated,
		ID:     "abc123",
		Slug:   "harbor-house",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev changefeed.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event failed: %v", err)
	}
	if ev.Entity != "projects" || ev.Op != changefeed.OpCreated || ev.Slug != "harbor-house" {
		t.Errorf("event: got %+v", ev)
	}
}
