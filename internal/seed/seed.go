package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/app/models/dto"
	"github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

const seedUserID = "5d7a514b5d2c12c7449be045"

type sampleCourse struct {
	title       string
	description string
	weeks       int
	tuition     float64
	skill       models.Skill
	scholarship bool
}

type sampleBootcamp struct {
	name        string
	description string
	website     string
	email       string
	address     string
	careers     []models.Career
	housing     bool
	assistance  bool
	guarantee   bool
	acceptGi    bool
	courses     []sampleCourse
}

var samples = []sampleBootcamp{
	{
		name:        "Devworks Bootcamp",
		description: "Full stack web development with modern JavaScript and Go",
		website:     "https://devworks.com",
		email:       "enroll@devworks.com",
		address:     "233 Bay State Rd Boston MA 02215",
		careers:     []models.Career{models.CareerWebDevelopment, models.CareerUIUX, models.CareerBusiness},
		housing:     true,
		assistance:  true,
		courses: []sampleCourse{
			{"Front End Web Development", "HTML, CSS and modern browser tooling", 8, 8000, models.SkillBeginner, true},
			{"Full Stack Web Development", "Server side development with a document database", 12, 10000, models.SkillIntermediate, true},
		},
	},
	{
		name:        "ModernTech Bootcamp",
		description: "Mobile and data focused programs for working engineers",
		website:     "https://moderntech.com",
		email:       "enroll@moderntech.com",
		address:     "220 Pawtucket St, Lowell, MA 01854",
		careers:     []models.Career{models.CareerMobileDevelopment, models.CareerDataScience},
		guarantee:   true,
		acceptGi:    true,
		courses: []sampleCourse{
			{"Mobile App Development", "Native and cross platform mobile apps", 10, 6000, models.SkillIntermediate, false},
			{"Data Science Program", "Statistics, pandas and machine learning fundamentals", 12, 12000, models.SkillAdvanced, false},
		},
	},
}

// CreateDefaultData creates sample bootcamps and courses through the services
// so averages are computed as for any client write. Records that already exist
// are skipped.
func CreateDefaultData(ctx context.Context, svc *services.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Bootcamps/Courses)...")
	var finalErr error

	existing, err := svc.BootcampService.GetBootcamps(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]*models.Bootcamp, len(existing))
	for _, b := range existing {
		byName[b.Name] = b
	}

	for _, sample := range samples {
		bootcamp, ok := byName[sample.name]
		if !ok {
			bootcamp, err = svc.BootcampService.CreateBootcamp(ctx, sample.request())
			if err != nil {
				lgr.Error().Err(err).Str("bootcamp", sample.name).Msg("Error creating sample bootcamp")
				finalErr = errors.Join(finalErr, err)
				continue
			}
		}

		for _, c := range sample.courses {
			_, err := svc.CourseService.CreateCourse(ctx, bootcamp.ID.Hex(), c.request())
			var dupErr *apperrors.DuplicateFieldError
			if err != nil && !errors.As(err, &dupErr) {
				lgr.Error().Err(err).Str("course", c.title).Msg("Error creating sample course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	svc.AverageCost.Wait()
	lgr.Info().Int("bootcamps", len(samples)).Msg("Default data ensured")
	return finalErr
}

func (s sampleBootcamp) request() *dto.BootcampRequest {
	return &dto.BootcampRequest{
		Name:          &s.name,
		Description:   &s.description,
		Website:       &s.website,
		Email:         &s.email,
		Address:       &s.address,
		Careers:       s.careers,
		Housing:       &s.housing,
		JobAssistance: &s.assistance,
		JobGuarantee:  &s.guarantee,
		AcceptGi:      &s.acceptGi,
	}
}

func (c sampleCourse) request() *dto.CourseRequest {
	skill := string(c.skill)
	user := seedUserID
	return &dto.CourseRequest{
		Title:                &c.title,
		Description:          &c.description,
		Weeks:                &c.weeks,
		Tuition:              &c.tuition,
		MinimumSkill:         &skill,
		ScholarshipAvailable: &c.scholarship,
		User:                 &user,
	}
}
