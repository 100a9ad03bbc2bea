package articlestore

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

var ErrDuplicateSlug = errors.New("an article with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("articles")}
}

// Create inserts a new Article, deriving the slug from the title when
// the caller has not supplied one. Publishing an article stamps
// PublishedAt once; it is never overwritten on later edits.
func (s *Store) Create(ctx context.Context, a models.Article) (models.Article, error) {
	now := time.Now().UTC()

	a.ID = primitive.NewObjectID()
	a.Title = strings.TrimSpace(a.Title)
	a.TitleCI = text.Fold(a.Title)
	if a.Slug == "" {
		a.Slug = slug.Derive(a.Title)
	}
	if a.Status == "" {
		a.Status = status.Draft
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.Status == status.Published && a.PublishedAt == nil {
		a.PublishedAt = &now
	}
	a.CreatedAt = now
	a.UpdatedAt = &now

	if a.Title == "" {
		return models.Article{}, mongo.CommandError{Message: "title is required"}
	}
	if !slug.IsValid(a.Slug) {
		return models.Article{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(a.Status) {
		return models.Article{}, mongo.CommandError{Message: "status must be 'published' or 'draft'"}
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Article{}, ErrDuplicateSlug
		}
		return models.Article{}, err
	}
	return a, nil
}

// Update applies a partial update. The slug is never re-derived. Moving
// a draft to published stamps PublishedAt if it was never set.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Article) error {
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

	set["excerpt"] = mut.Excerpt
	set["body"] = mut.Body
	set["cover_image"] = mut.CoverImage
	set["author"] = mut.Author

	if mut.Tags != nil {
		set["tags"] = mut.Tags
	}

	now := time.Now().UTC()
	set["updated_at"] = now

	update := bson.M{"$set": set}
	if mut.Status == status.Published {
		// $setOnInsert does not apply to updates; use a conditional
		// second write only when published_at is still unset.
		if _, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id, "published_at": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"published_at": now}},
		); err != nil {
			return err
		}
	}

	_, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	return nil
}

// GetByID returns an article by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// GetBySlug returns an article by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.Article, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var a models.Article
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// Delete removes an article by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns articles matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Article, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of articles matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
