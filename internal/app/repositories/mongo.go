package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yigit/devcamper/internal/app/models"
)

// NewMongoRepositories initializes all repositories on top of db. Every
// operation is bounded by timeout.
func NewMongoRepositories(db *mongo.Database, timeout time.Duration) *Repositories {
	return &Repositories{
		BootcampRepository: NewBootcampRepository(db.Collection(models.BootcampCollection), timeout),
		CourseRepository:   NewCourseRepository(db.Collection(models.CourseCollection), timeout),
		Store:              mongoPinger{client: db.Client(), timeout: timeout},
	}
}

type mongoPinger struct {
	client  *mongo.Client
	timeout time.Duration
}

func (p mongoPinger) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()
	return p.client.Ping(ctx, readpref.Primary())
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
