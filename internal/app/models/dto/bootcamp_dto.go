package dto

import (
	"time"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/pkg/helpers"
	"github.com/yigit/devcamper/internal/pkg/validation"
)

// BootcampMessages are the schema messages reported for bootcamp fields
var BootcampMessages = validation.Messages{
	"name.required":   "Please add a name",
	"name.min":        "Please add a name",
	"name.max":        "Name can not be more than 50 characters",
	"description.max": "Description can not be more than 500 characters",
	"website.url":     "Please use a valid URL with HTTP or HTTPS",
	"phone.max":       "Phone number can not be longer than 20 characters",
	"email.email":     "Please add a valid email",
}

// BootcampRequest is the body of bootcamp create and update calls. Nil
// fields are absent from the body.
type BootcampRequest struct {
	Name          *string         `json:"name" validate:"required,min=1,max=50" example:"Devworks Bootcamp"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	Website       *string         `json:"website" validate:"omitempty,url" example:"https://devworks.com"`
	Phone         *string         `json:"phone" validate:"omitempty,max=20"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	Address       *string         `json:"address"`
	Careers       []models.Career `json:"careers" validate:"omitempty,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' Business Other"`
	Housing       *bool           `json:"housing"`
	JobAssistance *bool           `json:"jobAssistance"`
	JobGuarantee  *bool           `json:"jobGuarantee"`
	AcceptGi      *bool           `json:"acceptGi"`
	Photo         *string         `json:"photo"`
}

// Normalize trims string fields in place
func (r *BootcampRequest) Normalize() {
	helpers.TrimSpace(r.Name)
	helpers.TrimSpace(r.Description)
	helpers.TrimSpace(r.Website)
	helpers.TrimSpace(r.Phone)
	helpers.TrimSpace(r.Email)
	helpers.TrimSpace(r.Address)
}

// Validate runs the bootcamp schema validators. Blank optional fields are
// treated as absent, like an unset path.
func (r *BootcampRequest) Validate() error {
	v := *r
	v.Description = helpers.NilIfEmpty(v.Description)
	v.Website = helpers.NilIfEmpty(v.Website)
	v.Phone = helpers.NilIfEmpty(v.Phone)
	v.Email = helpers.NilIfEmpty(v.Email)
	return validation.Struct(&v, BootcampMessages)
}

// Fill copies every field absent from r from the stored bootcamp so the
// validators see the merged document.
func (r *BootcampRequest) Fill(b *models.Bootcamp) {
	helpers.Fill(&r.Name, b.Name)
	helpers.Fill(&r.Description, b.Description)
	helpers.Fill(&r.Website, b.Website)
	helpers.Fill(&r.Phone, b.Phone)
	helpers.Fill(&r.Email, b.Email)
	helpers.Fill(&r.Address, b.Address)
	helpers.Fill(&r.Photo, b.Photo)
	helpers.Fill(&r.Housing, b.Housing)
	helpers.Fill(&r.JobAssistance, b.JobAssistance)
	helpers.Fill(&r.JobGuarantee, b.JobGuarantee)
	helpers.Fill(&r.AcceptGi, b.AcceptGi)
	if r.Careers == nil {
		r.Careers = b.Careers
	}
}

// ApplyTo writes the present fields of r onto b. AverageCost, ID and
// CreatedAt are left untouched.
func (r *BootcampRequest) ApplyTo(b *models.Bootcamp) {
	helpers.Set(&b.Name, r.Name)
	helpers.Set(&b.Description, r.Description)
	helpers.Set(&b.Website, r.Website)
	helpers.Set(&b.Phone, r.Phone)
	helpers.Set(&b.Email, r.Email)
	helpers.Set(&b.Address, r.Address)
	helpers.Set(&b.Photo, r.Photo)
	helpers.Set(&b.Housing, r.Housing)
	helpers.Set(&b.JobAssistance, r.JobAssistance)
	helpers.Set(&b.JobGuarantee, r.JobGuarantee)
	helpers.Set(&b.AcceptGi, r.AcceptGi)
	if r.Careers != nil {
		b.Careers = r.Careers
	}
}

// ToModel builds a new bootcamp with schema defaults applied
func (r *BootcampRequest) ToModel(now time.Time) *models.Bootcamp {
	b := &models.Bootcamp{
		Careers:   []models.Career{},
		Photo:     models.DefaultPhoto,
		CreatedAt: now,
	}
	r.ApplyTo(b)
	if b.Photo == "" {
		b.Photo = models.DefaultPhoto
	}
	return b
}
