package servicestore

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

var ErrDuplicateSlug = errors.New("a service with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// Create inserts a new Service, deriving the slug from the title when
// the caller has not supplied one.
func (s *Store) Create(ctx context.Context, svc models.Service) (models.Service, error) {
	now := time.Now().UTC()

	svc.ID = primitive.NewObjectID()
	svc.Title = strings.TrimSpace(svc.Title)
	svc.TitleCI = text.Fold(svc.Title)
	if svc.Slug == "" {
		svc.Slug = slug.Derive(svc.Title)
	}
	if svc.Status == "" {
		svc.Status = status.Draft
	}
	svc.CreatedAt = now
	svc.UpdatedAt = &now

	if svc.Title == "" {
		return models.Service{}, mongo.CommandError{Message: "title is required"}
	}
	if !slug.IsValid(svc.Slug) {
		return models.Service{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(svc.Status) {
		return models.Service{}, mongo.CommandError{Message: "status must be 'published' or 'draft'"}
	}

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Service{}, ErrDuplicateSlug
		}
		return models.Service{}, err
	}
	return svc, nil
}

// Update applies a partial update. The slug is never re-derived.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Service) error {
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
			return mongo.CommandError{Message: "status must be 'published' or 'draft'"}
		}
		set["status"] = mut.Status
	}

	set["summary"] = mut.Summary
	set["body"] = mut.Body
	set["icon"] = mut.Icon
	set["sort_order"] = mut.SortOrder

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

// GetByID returns a service by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// GetBySlug returns a service by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.Service, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var svc models.Service
	if err := s.c.FindOne(ctx, filter).Decode(&svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Delete removes a service by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns services matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Service, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of services matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
