package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// ErrNotFound is returned when no document matches the requested id
var ErrNotFound = apperrors.ErrResourceNotFound

// CourseFilter narrows course listings. A nil BootcampID lists every course.
type CourseFilter struct {
	BootcampID *primitive.ObjectID
}

// BootcampRepository persists bootcamp documents
type BootcampRepository interface {
	Create(ctx context.Context, bootcamp *models.Bootcamp) error
	FindAll(ctx context.Context) ([]*models.Bootcamp, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.BootcampSummary, error)
	// Update writes the client editable fields of bootcamp and returns the stored document
	Update(ctx context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	// SetAverageCost stores cost, or removes the field when cost is nil
	SetAverageCost(ctx context.Context, id primitive.ObjectID, cost *int) error
}

// CourseRepository persists course documents
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindAll(ctx context.Context, filter CourseFilter) ([]*models.Course, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error)
	// AverageTuition returns the mean tuition of the bootcamp's courses.
	// found is false when the bootcamp has no courses.
	AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (avg float64, found bool, err error)
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories holds all the repository instances
type Repositories struct {
	BootcampRepository BootcampRepository
	CourseRepository   CourseRepository
	Store              Pinger
}
