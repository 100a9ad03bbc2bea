package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobOpening is a careers-page posting. Requirements, responsibilities
// and benefits are repeatable free-text lists edited row by row in the
// admin form; empty rows are stripped before they ever reach the store.
type JobOpening struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"-"`
	Slug    string             `bson:"slug" json:"slug"`

	Department     string `bson:"department" json:"department"` // required
	Location       string `bson:"location,omitempty" json:"location,omitempty"`
	EmploymentType string `bson:"employment_type,omitempty" json:"employment_type,omitempty"` // e.g. "full-time"
	Description    string `bson:"description,omitempty" json:"description,omitempty"`

	Requirements     []string `bson:"requirements" json:"requirements"`
	Responsibilities []string `bson:"responsibilities" json:"responsibilities"`
	Benefits         []string `bson:"benefits" json:"benefits"`

	ApplicationDeadline *time.Time `bson:"application_deadline,omitempty" json:"application_deadline,omitempty"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
