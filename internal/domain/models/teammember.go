package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a person on the studio's public team page.
type TeamMember struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`
	Slug   string             `bson:"slug" json:"slug"`

	RoleTitle string `bson:"role_title,omitempty" json:"role_title,omitempty"` // e.g. "Principal Architect"
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Photo     string `bson:"photo,omitempty" json:"photo,omitempty"`

	Specializations []string `bson:"specializations" json:"specializations"`

	SortOrder int    `bson:"sort_order" json:"sort_order"`
	Status    string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
