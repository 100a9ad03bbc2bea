package teamstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/forma-studio/forma/internal/app/system/normalize"
	"github.com/forma-studio/forma/internal/app/system/slug"
	"github.com/forma-studio/forma/internal/app/system/status"
	"github.com/forma-studio/forma/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateSlug = errors.New("a team member with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// Create inserts a new TeamMember, deriving the slug from the name when
// the caller has not supplied one.
func (s *Store) Create(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	now := time.Now().UTC()

	m.ID = primitive.NewObjectID()
	m.Name = normalize.Name(m.Name)
	m.NameCI = text.Fold(m.Name)
	if m.Email != "" {
		m.Email = normalize.Email(m.Email)
	}
	if m.Slug == "" {
		m.Slug = slug.Derive(m.Name)
	}
	if m.Status == "" {
		m.Status = status.Draft
	}
	if m.Specializations == nil {
		m.Specializations = []string{}
	}
	m.CreatedAt = now
	m.UpdatedAt = &now

	if m.Name == "" {
		return models.TeamMember{}, mongo.CommandError{Message: "name is required"}
	}
	if !slug.IsValid(m.Slug) {
		return models.TeamMember{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(m.Status) {
		return models.TeamMember{}, mongo.CommandError{Message: "status must be 'published' or 'draft'"}
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.TeamMember{}, ErrDuplicateSlug
		}
		return models.TeamMember{}, err
	}
	return m, nil
}

// Update applies a partial update. The slug is never re-derived.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.TeamMember) error {
	set := bson.M{}

	if strings.TrimSpace(mut.Name) != "" {
		mut.Name = normalize.Name(mut.Name)
		set["name"] = mut.Name
		set["name_ci"] = text.Fold(mut.Name)
	}
	if mut.Slug != "" {
		if !slug.IsValid(mut.Slug) {
			return mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
		}
		set["slug"] = mut.Slug
	}
	if mut.Status != "" {
		if !status.IsValid(mut.Status) {
			return mongo.CommandError{Message: "status must be 'published' or 'draft'"}
		}
		set["status"] = mut.Status
	}

	set["role_title"] = mut.RoleTitle
	set["bio"] = mut.Bio
	set["email"] = normalize.Email(mut.Email)
	set["photo"] = mut.Photo
	set["sort_order"] = mut.SortOrder

	if mut.Specializations != nil {
		set["specializations"] = mut.Specializations
	}

	set["updated_at"] = time.Now().UTC()

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// GetByID returns a team member by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.TeamMember, error) {
	var m models.TeamMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}

// GetBySlug returns a team member by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.TeamMember, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var m models.TeamMember
	if err := s.c.FindOne(ctx, filter).Decode(&m); err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}

// Delete removes a team member by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns team members matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.TeamMember, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of team members matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
