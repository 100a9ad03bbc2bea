package projectstore

import (
	"context"
	"errors"
	"strings"
	"time"

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

var (
	ErrDuplicateSlug = errors.New("a project with this slug already exists")
	errBadStatus     = errors.New(`status must be "published" or "draft"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Create inserts a new Project, deriving the slug from the title when the
// caller has not supplied one. Gallery is always stored as a native array.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()

	p.ID = primitive.NewObjectID()
	p.Title = strings.TrimSpace(p.Title)
	p.TitleCI = text.Fold(p.Title)
	if p.Slug == "" {
		p.Slug = slug.Derive(p.Title)
	}
	if p.Status == "" {
		p.Status = status.Draft
	}
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	p.CreatedAt = now
	p.UpdatedAt = &now

	if p.Title == "" {
		return models.Project{}, mongo.CommandError{Message: "title is required"}
	}
	if !slug.IsValid(p.Slug) {
		return models.Project{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(p.Status) {
		return models.Project{}, errBadStatus
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateSlug
		}
		return models.Project{}, err
	}
	return p, nil
}

// Update applies a partial update and refreshes UpdatedAt. The slug is
// never re-derived; it only changes when the caller sets one explicitly.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Project) error {
	set := bson.M{}

	if strings.TrimSpace(mut.Title) != "" {
		mut.Title = strings.TrimSpace(mut.Title)
		set["title"] = mut.Title
		set["title_ci"] = text.Fold(mut.Title)
	}
	if mut.Slug != "" {
		if !slug.IsValid(mut.Slug) {
			return mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
		}
		set["slug"] = mut.Slug
	}
	if mut.Status != "" {
		if !status.IsValid(mut.Status) {
			return errBadStatus
		}
		set["status"] = mut.Status
	}

	// Descriptive fields can be cleared.
	set["description"] = mut.Description
	set["category"] = mut.Category
	set["location"] = mut.Location
	set["client"] = mut.Client
	set["year"] = mut.Year
	set["area"] = mut.Area
	set["cover_image"] = mut.CoverImage
	set["featured"] = mut.Featured
	set["sort_order"] = mut.SortOrder

	if mut.Gallery != nil {
		set["gallery"] = mut.Gallery
	}

	if mut.UpdatedByID != nil {
		set["updated_by_id"] = mut.UpdatedByID
		set["updated_by_name"] = mut.UpdatedByName
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

// GetByID returns a project by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetBySlug returns a project by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.Project, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var p models.Project
	if err := s.c.FindOne(ctx, filter).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Delete removes a project by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns projects matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of projects matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
