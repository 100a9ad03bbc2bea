package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is one offering on the services page (e.g. "Interior
// Architecture", "Urban Planning").
type Service struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`
	Slug    string             `bson:"slug" json:"slug"`

	Summary string `bson:"summary,omitempty" json:"summary,omitempty"`
	Body    string `bson:"body,omitempty" json:"body,omitempty"` // sanitized HTML
	Icon    string `bson:"icon,omitempty" json:"icon,omitempty"`

	SortOrder int    `bson:"sort_order" json:"sort_order"`
	Status    string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
