package metricsstore_test

import (
	"testing"

	metricsstore "github.com/forma-studio/forma/internal/app/store/metrics"
	"github.com/forma-studio/forma/internal/testutil"
)

func TestFetchDashboardCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateProject(ctx, "Harbor House", "published")
	fx.CreateProject(ctx, "Hillside Studio", "draft")
	fx.CreateTeamMember(ctx, "Ada Example", "published")
	fx.CreateJobOpening(ctx, "DevOps Engineer", "Engineering", "published", nil)
	fx.CreateUser(ctx, "Admin", "admin@example.com", "admin")

	counts := metricsstore.FetchDashboardCounts(ctx, db)

	if counts.Projects != 2 {
		t.Errorf("Projects: got %d, want 2", counts.Projects)
	}
	if counts.PublishedProjects != 1 {
		t.Errorf("PublishedProjects: got %d, want 1", counts.PublishedProjects)
	}
	if counts.TeamMembers != 1 {
		t.Errorf("TeamMembers: got %d, want 1", counts.TeamMembers)
	}
	if counts.JobOpenings != 1 {
		t.Errorf("JobOpenings: got %d, want 1", counts.JobOpenings)
	}
	if counts.Users != 1 {
		t.Errorf("Users: got %d, want 1", counts.Users)
	}
	if counts.Articles != 0 {
		t.Errorf("Articles: got %d, want 0", counts.Articles)
	}
}
