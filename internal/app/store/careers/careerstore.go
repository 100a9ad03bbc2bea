package careerstore

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

var ErrDuplicateSlug = errors.New("a job opening with this slug already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_openings")}
}

// Create inserts a new JobOpening, deriving the slug from the title when
// the caller has not supplied one. List fields are stored as native
// arrays; nil becomes an empty array so readers never see null.
func (s *Store) Create(ctx context.Context, j models.JobOpening) (models.JobOpening, error) {
	now := time.Now().UTC()

	j.ID = primitive.NewObjectID()
	j.Title = strings.TrimSpace(j.Title)
	j.TitleCI = text.Fold(j.Title)
	j.Department = strings.TrimSpace(j.Department)
	if j.Slug == "" {
		j.Slug = slug.Derive(j.Title)
	}
	if j.Status == "" {
		j.Status = status.Draft
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.Responsibilities == nil {
		j.Responsibilities = []string{}
	}
	if j.Benefits == nil {
		j.Benefits = []string{}
	}
	j.CreatedAt = now
	j.UpdatedAt = &now

	if j.Title == "" {
		return models.JobOpening{}, mongo.CommandError{Message: "title is required"}
	}
	if j.Department == "" {
		return models.JobOpening{}, mongo.CommandError{Message: "department is required"}
	}
	if !slug.IsValid(j.Slug) {
		return models.JobOpening{}, mongo.CommandError{Message: "slug must contain only lowercase letters, digits, and hyphens"}
	}
	if !status.IsValid(j.Status) {
		return models.JobOpening{}, mongo.CommandError{Message: "status must be 'published' or 'draft'"}
	}

	if _, err := s.c.InsertOne(ctx, j); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JobOpening{}, ErrDuplicateSlug
		}
		return models.JobOpening{}, err
	}
	return j, nil
}

// Update applies a partial update. The slug is never re-derived. A nil
// list field leaves the stored array untouched; an empty non-nil list
// clears it.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.JobOpening) error {
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
	if strings.TrimSpace(mut.Department) != "" {
		set["department"] = strings.TrimSpace(mut.Department)
	}
	if mut.Status != "" {
		if !status.IsValid(mut.Status) {
			return mongo.CommandError{Message: "status must be 'published' or 'draft'"}
		}
		set["status"] = mut.Status
	}

	set["location"] = mut.Location
	set["employment_type"] = mut.EmploymentType
	set["description"] = mut.Description
	set["application_deadline"] = mut.ApplicationDeadline

	if mut.Requirements != nil {
		set["requirements"] = mut.Requirements
	}
	if mut.Responsibilities != nil {
		set["responsibilities"] = mut.Responsibilities
	}
	if mut.Benefits != nil {
		set["benefits"] = mut.Benefits
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

// GetByID returns a job opening by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JobOpening, error) {
	var j models.JobOpening
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return models.JobOpening{}, err
	}
	return j, nil
}

// GetBySlug returns a job opening by slug, optionally restricted to published.
func (s *Store) GetBySlug(ctx context.Context, sl string, publishedOnly bool) (models.JobOpening, error) {
	filter := bson.M{"slug": sl}
	if publishedOnly {
		filter["status"] = status.Published
	}
	var j models.JobOpening
	if err := s.c.FindOne(ctx, filter).Decode(&j); err != nil {
		return models.JobOpening{}, err
	}
	return j, nil
}

// Delete removes a job opening by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns job openings matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.JobOpening, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.JobOpening
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of job openings matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
