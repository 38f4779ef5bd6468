package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/pkg/helpers"
	"github.com/yigit/devcamper/internal/pkg/validation"
)

// CourseMessages are the schema messages reported for course fields
var CourseMessages = validation.Messages{
	"title.required":        "Please add a course title",
	"title.min":             "Please add a course title",
	"description.required":  "Please add a description",
	"description.min":       "Please add a description",
	"weeks.required":        "Please add a number of weeks",
	"tuition.required":      "Please add a tuition cost",
	"minimumSkill.required": "Please add a minimum skill",
	"user.mongodb":          "Please add a valid user id",
	"bootcamp.mongodb":      "Please add a valid bootcamp id",
}

// CourseRequest is the body of course create and update calls. Nil fields
// are absent from the body.
type CourseRequest struct {
	Title                *string  `json:"title" validate:"required,min=1" example:"Front End Web Development"`
	Description          *string  `json:"description" validate:"required,min=1"`
	Weeks                *int     `json:"weeks" validate:"required" example:"8"`
	Tuition              *float64 `json:"tuition" validate:"required" example:"8000"`
	MinimumSkill         *string  `json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced" example:"beginner"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
	Bootcamp             *string  `json:"bootcamp" validate:"required,mongodb"`
	User                 *string  `json:"user" validate:"required,mongodb" example:"5d7a514b5d2c12c7449be045"`
}

// Normalize trims string fields in place
func (r *CourseRequest) Normalize() {
	helpers.TrimSpace(r.Title)
	helpers.TrimSpace(r.Description)
	helpers.TrimSpace(r.MinimumSkill)
	helpers.TrimSpace(r.Bootcamp)
	helpers.TrimSpace(r.User)
}

// Validate runs the course schema validators
func (r *CourseRequest) Validate() error {
	return validation.Struct(r, CourseMessages)
}

// Fill copies every field absent from r from the stored course
func (r *CourseRequest) Fill(c *models.Course) {
	helpers.Fill(&r.Title, c.Title)
	helpers.Fill(&r.Description, c.Description)
	helpers.Fill(&r.MinimumSkill, string(c.MinimumSkill))
	helpers.Fill(&r.Bootcamp, c.Bootcamp.Hex())
	helpers.Fill(&r.User, c.User.Hex())
	helpers.Fill(&r.ScholarshipAvailable, c.ScholarshipAvailable)
	helpers.Fill(&r.Weeks, c.Weeks)
	helpers.Fill(&r.Tuition, c.Tuition)
}

// ApplyTo writes the present fields of a validated r onto c
func (r *CourseRequest) ApplyTo(c *models.Course) {
	helpers.Set(&c.Title, r.Title)
	helpers.Set(&c.Description, r.Description)
	helpers.Set(&c.ScholarshipAvailable, r.ScholarshipAvailable)
	helpers.Set(&c.Weeks, r.Weeks)
	helpers.Set(&c.Tuition, r.Tuition)
	if r.MinimumSkill != nil {
		c.MinimumSkill = models.Skill(*r.MinimumSkill)
	}
	if r.Bootcamp != nil {
		if oid, err := primitive.ObjectIDFromHex(*r.Bootcamp); err == nil {
			c.Bootcamp = oid
		}
	}
	if r.User != nil {
		if oid, err := primitive.ObjectIDFromHex(*r.User); err == nil {
			c.User = oid
		}
	}
}

// ToModel builds a new course with schema defaults applied
func (r *CourseRequest) ToModel(now time.Time) *models.Course {
	c := &models.Course{CreatedAt: now}
	r.ApplyTo(c)
	return c
}
