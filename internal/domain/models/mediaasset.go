package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAsset is one uploaded file in the media library.
type MediaAsset struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Path        string `bson:"path" json:"path"` // storage path (local or S3 key)
	FileName    string `bson:"file_name" json:"file_name"`
	Size        int64  `bson:"size" json:"size"`
	ContentType string `bson:"content_type" json:"content_type"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"` // public URL when served locally

	UploadedByID   *primitive.ObjectID `bson:"uploaded_by_id,omitempty" json:"-"`
	UploadedByName string              `bson:"uploaded_by_name,omitempty" json:"uploaded_by_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
