package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// Collection names
const (
	BootcampCollection = "bootcamps"
	CourseCollection   = "courses"
)

// Skill is the minimum skill level a course expects
type Skill string

const (
	SkillBeginner     Skill = "beginner"
	SkillIntermediate Skill = "intermediate"
	SkillAdvanced     Skill = "advanced"
)

// Career is a career track a bootcamp prepares for
type Career string

const (
	CareerWebDevelopment    Career = "Web Development"
	CareerMobileDevelopment Career = "Mobile Development"
	CareerUIUX              Career = "UI/UX"
	CareerDataScience       Career = "Data Science"
	CareerBusiness          Career = "Business"
	CareerOther             Career = "Other"
)

// ParseID converts a hex path identifier into an ObjectID. Malformed input
// yields an *apperrors.CastError.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, apperrors.NewCastError(id, "ObjectId")
	}
	return oid, nil
}
