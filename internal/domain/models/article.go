package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a post in the explore/journal section.
type Article struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`
	Slug    string             `bson:"slug" json:"slug"`

	Excerpt    string   `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Body       string   `bson:"body,omitempty" json:"body,omitempty"` // sanitized HTML
	CoverImage string   `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Tags       []string `bson:"tags" json:"tags"`
	Author     string   `bson:"author,omitempty" json:"author,omitempty"`

	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	Status      string     `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
