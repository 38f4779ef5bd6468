package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course represents a course offered by a bootcamp.
type Course struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	Weeks                int                `json:"weeks" bson:"weeks"`
	Tuition              float64            `json:"tuition" bson:"tuition"`
	MinimumSkill         Skill              `json:"minimumSkill" bson:"minimumSkill"`
	ScholarshipAvailable bool               `json:"scholarshipAvailable" bson:"scholarshipAvailable"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	Bootcamp             primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	User                 primitive.ObjectID `json:"user" bson:"user"`
}

// PopulatedCourse is a course whose bootcamp reference has been expanded.
// Bootcamp is nil when the referenced bootcamp no longer exists.
type PopulatedCourse struct {
	ID                   primitive.ObjectID `json:"_id"`
	Title                string             `json:"title"`
	Description          string             `json:"description"`
	Weeks                int                `json:"weeks"`
	Tuition              float64            `json:"tuition"`
	MinimumSkill         Skill              `json:"minimumSkill"`
	ScholarshipAvailable bool               `json:"scholarshipAvailable"`
	CreatedAt            time.Time          `json:"createdAt"`
	Bootcamp             *BootcampSummary   `json:"bootcamp"`
	User                 primitive.ObjectID `json:"user"`
}

// Populate expands the bootcamp reference of c with summary
func (c *Course) Populate(summary *BootcampSummary) *PopulatedCourse {
	return &PopulatedCourse{
		ID:                   c.ID,
		Title:                c.Title,
		Description:          c.Description,
		Weeks:                c.Weeks,
		Tuition:              c.Tuition,
		MinimumSkill:         c.MinimumSkill,
		ScholarshipAvailable: c.ScholarshipAvailable,
		CreatedAt:            c.CreatedAt,
		Bootcamp:             summary,
		User:                 c.User,
	}
}
