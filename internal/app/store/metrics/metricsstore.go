package metricsstore

import (
	"context"
	"sync"

	"github.com/forma-studio/forma/internal/app/system/status"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	Projects          int64 `json:"projects"`
	PublishedProjects int64 `json:"published_projects"`
	TeamMembers       int64 `json:"team_members"`
	Services          int64 `json:"services"`
	JobOpenings       int64 `json:"job_openings"`
	Articles          int64 `json:"articles"`
	Partners          int64 `json:"partners"`
	MediaAssets       int64 `json:"media_assets"`
	Users             int64 `json:"users"`
}

// FetchDashboardCounts gathers the dashboard totals concurrently.
// Intentionally tolerant: a counter whose query fails stays 0 so one
// slow collection cannot blank the whole dashboard.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var (
		out Counts
		mu  sync.Mutex
	)

	count := func(coll string, filter bson.M, dst *int64) func() error {
		return func() error {
			n, err := db.Collection(coll).CountDocuments(ctx, filter)
			if err != nil {
				return nil // tolerate; leave the counter at zero
			}
			mu.Lock()
			*dst = n
			mu.Unlock()
			return nil
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(count("projects", bson.M{}, &out.Projects))
	g.Go(count("projects", bson.M{"status": status.Published}, &out.PublishedProjects))
	g.Go(count("team_members", bson.M{}, &out.TeamMembers))
	g.Go(count("services", bson.M{}, &out.Services))
	g.Go(count("job_openings", bson.M{}, &out.JobOpenings))
	g.Go(count("articles", bson.M{}, &out.Articles))
	g.Go(count("partners", bson.M{}, &out.Partners))
	g.Go(count("media_assets", bson.M{}, &out.MediaAssets))
	g.Go(count("users", bson.M{}, &out.Users))
	_ = g.Wait()

	return out
}
