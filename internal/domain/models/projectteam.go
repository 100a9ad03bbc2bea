package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectTeamLink is one join row connecting a project to a team
// member. Links are replaced wholesale when a project's team selection
// is saved; Position preserves the order members were picked in.
type ProjectTeamLink struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID    primitive.ObjectID `bson:"project_id" json:"project_id"`
	TeamMemberID primitive.ObjectID `bson:"team_member_id" json:"team_member_id"`
	Position     int                `bson:"position" json:"position"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
