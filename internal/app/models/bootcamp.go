package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPhoto is stored when a bootcamp is created without a photo
const DefaultPhoto = "no-photo.jpg"

// Bootcamp represents a coding bootcamp offering courses.
// AverageCost is maintained by the average cost updater only.
type Bootcamp struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Website       string             `json:"website,omitempty" bson:"website,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Careers       []Career           `json:"careers" bson:"careers"`
	Housing       bool               `json:"housing" bson:"housing"`
	JobAssistance bool               `json:"jobAssistance" bson:"jobAssistance"`
	JobGuarantee  bool               `json:"jobGuarantee" bson:"jobGuarantee"`
	AcceptGi      bool               `json:"acceptGi" bson:"acceptGi"`
	Photo         string             `json:"photo" bson:"photo"`
	AverageCost   *int               `json:"averageCost,omitempty" bson:"averageCost,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// BootcampSummary is the projection used when a course expands its bootcamp reference
type BootcampSummary struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
}

// Summary returns the name/description projection of b
func (b *Bootcamp) Summary() *BootcampSummary {
	return &BootcampSummary{ID: b.ID, Name: b.Name, Description: b.Description}
}
