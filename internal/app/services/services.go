package services

import (
	"time"

	"github.com/yigit/devcamper/internal/app/repositories"
)

// Services defined in this package:
// - BootcampService: CRUD for bootcamps, cascading deletes to their courses
// - CourseService: CRUD for courses, triggering average cost recalculation
// - AverageCostUpdater: maintains Bootcamp.AverageCost

// Options configures the services container
type Options struct {
	// RecalculateTimeout bounds one average cost recalculation
	RecalculateTimeout time.Duration
	// AsyncRecalculation runs recalculations off the request goroutine
	AsyncRecalculation bool
}

// Services holds all the service instances
type Services struct {
	BootcampService BootcampService
	CourseService   CourseService
	AverageCost     *AverageCostUpdater
}

// NewServices initializes all services on top of repos
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	updater := NewAverageCostUpdater(repos.BootcampRepository, repos.CourseRepository, opts.RecalculateTimeout, opts.AsyncRecalculation)
	return &Services{
		BootcampService: NewBootcampService(repos.BootcampRepository, repos.CourseRepository),
		CourseService:   NewCourseService(repos.CourseRepository, repos.BootcampRepository, updater),
		AverageCost:     updater,
	}
}
