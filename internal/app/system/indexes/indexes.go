// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

Every content collection carries a unique index on slug: the duplicate
check behind the API's 409 responses is this index, not an application-
level read-then-write.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	slugged := []string{"projects", "team_members", "services", "job_openings", "articles", "partners"}
	for _, coll := range slugged {
		if err := ensureSlugged(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProjectTeam(ctx, db); err != nil {
		problems = append(problems, "project_team: "+err.Error())
	}
	if err := ensureMediaAssets(ctx, db); err != nil {
		problems = append(problems, "media_assets: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ------------------------- per-collection sets ------------------------- */

func ensureSlugged(ctx context.Context, db *mongo.Database, coll string) error {
	return ensureIndexSet(ctx, db.Collection(coll), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName(coll + "_slug_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "sort_order", Value: 1}},
			Options: options.Index().SetName(coll + "_status_sort"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("users_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("users_role"),
		},
	})
}

func ensureProjectTeam(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("project_team"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "team_member_id", Value: 1}},
			Options: options.Index().SetName("project_team_pair_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "team_member_id", Value: 1}},
			Options: options.Index().SetName("project_team_member"),
		},
	})
}

func ensureMediaAssets(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("media_assets"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("media_created_desc"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("oauth_states"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("oauth_states_state_unique").SetUnique(true),
		},
		{
			// Mongo reaps expired states; CleanupExpired is a belt for
			// deployments where the TTL monitor lags.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("oauth_states_ttl").SetExpireAfterSeconds(0),
		},
	})
}

/* ----------------- reconcile a desired index set ----------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	var errs []string
	for _, m := range models {
		var desiredUnique *bool
		if m.Options != nil {
			desiredUnique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok && sameBoolPtr(desiredUnique, ex.Unique) {
			continue // already in the desired shape
		}
		if ex, ok := existing[sig]; ok {
			// Same keys, different uniqueness: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): create failed: %v", coll.Name(), sig, err))
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("keys", sig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
