package projectteamstore

import (
	"context"
	"time"

	"github.com/forma-studio/forma/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the project_team join rows that link projects to team
// members. Rows for a project are always replaced as a set.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_team")}
}

// SetProjectTeam replaces a project's team links with the given member
// IDs, preserving their order as Position. Invalid member IDs are
// skipped rather than failing the whole write.
func (s *Store) SetProjectTeam(ctx context.Context, projectID primitive.ObjectID, memberIDs []string) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID}); err != nil {
		return err
	}
	if len(memberIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(memberIDs))
	pos := 0
	for _, raw := range memberIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			continue
		}
		docs = append(docs, models.ProjectTeamLink{
			ID:           primitive.NewObjectID(),
			ProjectID:    projectID,
			TeamMemberID: oid,
			Position:     pos,
			CreatedAt:    now,
		})
		pos++
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := s.c.InsertMany(ctx, docs)
	return err
}

// MemberIDsForProject returns the linked team member IDs in position order.
func (s *Store) MemberIDsForProject(ctx context.Context, projectID primitive.ObjectID) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.ProjectTeamLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.TeamMemberID.Hex())
	}
	return out, nil
}

// ProjectIDsForMember returns the projects a team member is linked to.
func (s *Store) ProjectIDsForMember(ctx context.Context, memberID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"team_member_id": memberID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.ProjectTeamLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}

	out := make([]primitive.ObjectID, 0, len(links))
	for _, l := range links {
		out = append(out, l.ProjectID)
	}
	return out, nil
}

// DeleteForProject removes all links for a project (used on project delete).
func (s *Store) DeleteForProject(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}

// DeleteForMember removes all links for a team member (used on member delete).
func (s *Store) DeleteForMember(ctx context.Context, memberID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"team_member_id": memberID})
	return err
}
