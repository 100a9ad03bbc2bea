package mediastore

import (
	"context"
	"time"

	"github.com/forma-studio/forma/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("media_assets")}
}

// Create records an uploaded file. The blob itself already lives in
// object storage by the time this row is written.
func (s *Store) Create(ctx context.Context, a models.MediaAsset) (models.MediaAsset, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()

	if a.Path == "" {
		return models.MediaAsset{}, mongo.CommandError{Message: "path is required"}
	}
	if a.FileName == "" {
		return models.MediaAsset{}, mongo.CommandError{Message: "file_name is required"}
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.MediaAsset{}, err
	}
	return a, nil
}

// GetByID returns a media asset by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MediaAsset, error) {
	var a models.MediaAsset
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.MediaAsset{}, err
	}
	return a, nil
}

// Delete removes a media asset row by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns a page of media assets, newest first.
func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.MediaAsset, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MediaAsset
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of media assets.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
