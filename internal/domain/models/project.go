package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a portfolio entry: one built (or in-progress) work shown
// on the public site and managed from the admin panel.
//
// Gallery is always a native string array at rest; the legacy
// JSON-string encoding is migrated away at startup.
type Project struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Slug    string             `bson:"slug" json:"slug"`

	Description string `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML
	Category    string `bson:"category,omitempty" json:"category,omitempty"`       // e.g. "residential", "cultural"
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	Client      string `bson:"client,omitempty" json:"client,omitempty"`
	Year        int    `bson:"year,omitempty" json:"year,omitempty"`
	Area        string `bson:"area,omitempty" json:"area,omitempty"` // e.g. "1,250 m²"

	CoverImage string   `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Gallery    []string `bson:"gallery" json:"gallery"`

	// TeamMemberIDs is accepted on create/update and materialized as
	// project_team join rows; it is not stored on the project document.
	TeamMemberIDs []string `bson:"-" json:"team_member_ids,omitempty"`

	Featured  bool   `bson:"featured" json:"featured"`
	SortOrder int    `bson:"sort_order" json:"sort_order"`
	Status    string `bson:"status" json:"status"` // "published" or "draft"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`

	CreatedByID   *primitive.ObjectID `bson:"created_by_id,omitempty" json:"-"`
	CreatedByName string              `bson:"created_by_name,omitempty" json:"-"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"-"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"-"`
}

// IsPublished reports whether the project is visible on the public API.
func (p *Project) IsPublished() bool {
	return p.Status == "published"
}
