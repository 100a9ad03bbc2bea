package partnerstore

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
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateSlug = errors.New("a partner with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("partners")}
}

// Create inserts a new Partner, deriving the slug from the name when
// the caller has not supplied one.
func (s *Store) Create(ctx context.Context, p models.Partner) (models.Partner, error) {
	now := time.Now().UTC()

	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	if p.Slug == "" {
		p.Slug = slug.Derive(p.Name)
	}
	if p.Status == "" {
		p.Status = status.Draft
	}
	p.CreatedAt = now
	p.UpdatedAt = &now

	if p.Name == "" {
		return models.Partner{}, mongo.CommandError{Message: "name is required"}
	}
	if !slug.IsValid(p.Slug) {
		return models.Partner{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(p.Status) {
		return models.Partner{}, mongo.CommandError{Message: "status must be 'published' or 'draft'"}
	}
	if p.Website != "" && !urlutil.IsValidAbsHTTPURL(p.Website) {
		return models.Partner{}, mongo.CommandError{Message: "website must be a valid http(s) URL"}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Partner{}, ErrDuplicateSlug
		}
		return models.Partner{}, err
	}
	return p, nil
}

// Update applies a partial update. The slug is never re-derived.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Partner) error {
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
	if mut.Website != "" && !urlutil.IsValidAbsHTTPURL(mut.Website) {
		return mongo.CommandError{Message: "website must be a valid http(s) URL"}
	}

	set["website"] = mut.Website
	set["logo"] = mut.Logo
	set["blurb"] = mut.Blurb
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

// GetByID returns a partner by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Partner, error) {
	var p models.Partner
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Partner{}, err
	}
	return p, nil
}

// GetBySlug returns a partner by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.Partner, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var p models.Partner
	if err := s.c.FindOne(ctx, filter).Decode(&p); err != nil {
		return models.Partner{}, err
	}
	return p, nil
}

// Delete removes a partner by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns partners matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Partner, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Partner
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of partners matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
