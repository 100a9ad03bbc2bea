package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner is a collaborating firm or consultant shown on the site.
type Partner struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Slug   string             `bson:"slug" json:"slug"`

	Website string `bson:"website,omitempty" json:"website,omitempty"` // validated absolute http(s) URL
	Logo    string `bson:"logo,omitempty" json:"logo,omitempty"`
	Blurb   string `bson:"blurb,omitempty" json:"blurb,omitempty"`

	SortOrder int    `bson:"sort_order" json:"sort_order"`
	Status    string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
