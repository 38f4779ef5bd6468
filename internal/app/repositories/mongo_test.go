package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/pkg/apperrors"
)

// testDatabase connects to MONGO_TEST_URI and returns a throwaway database
// with the unique indexes in place. Tests are skipped when it is unset.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("devcamper_test_%d", time.Now().UnixNano()))
	_, err = db.Collection(models.BootcampCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)
	_, err = db.Collection(models.CourseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoBootcampLifecycle(t *testing.T) {
	db := testDatabase(t)
	repos := NewMongoRepositories(db, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, repos.Store.Ping(ctx))

	b := &models.Bootcamp{Name: "Devworks", Careers: []models.Career{models.CareerWebDevelopment}, Photo: models.DefaultPhoto}
	require.NoError(t, repos.BootcampRepository.Create(ctx, b))

	err := repos.BootcampRepository.Create(ctx, &models.Bootcamp{Name: "Devworks"})
	var dupErr *apperrors.DuplicateFieldError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "duplicate field value is passed: { name: Devworks }", dupErr.Error())

	cost := 1500
	require.NoError(t, repos.BootcampRepository.SetAverageCost(ctx, b.ID, &cost))
	stored, err := repos.BootcampRepository.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AverageCost)
	assert.Equal(t, 1500, *stored.AverageCost)

	stored.Description = "bootcamp"
	updated, err := repos.BootcampRepository.Update(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "bootcamp", updated.Description)
	require.NotNil(t, updated.AverageCost)

	require.NoError(t, repos.BootcampRepository.SetAverageCost(ctx, b.ID, nil))
	stored, err = repos.BootcampRepository.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AverageCost)

	summaries, err := repos.BootcampRepository.FindSummaries(ctx, []primitive.ObjectID{b.ID})
	require.NoError(t, err)
	require.Contains(t, summaries, b.ID)
	assert.Equal(t, "Devworks", summaries[b.ID].Name)

	deleted, err := repos.BootcampRepository.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)

	_, err = repos.BootcampRepository.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoCourseAverageTuition(t *testing.T) {
	db := testDatabase(t)
	repos := NewMongoRepositories(db, 5*time.Second)
	ctx := context.Background()

	bootcampID := primitive.NewObjectID()
	for i, tuition := range []float64{1000, 2001} {
		c := &models.Course{Title: fmt.Sprintf("Course %d", i), Tuition: tuition, Bootcamp: bootcampID}
		require.NoError(t, repos.CourseRepository.Create(ctx, c))
	}

	avg, found, err := repos.CourseRepository.AverageTuition(ctx, bootcampID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 1500.5, avg, 0.0001)

	scoped, err := repos.CourseRepository.FindAll(ctx, CourseFilter{BootcampID: &bootcampID})
	require.NoError(t, err)
	assert.Len(t, scoped, 2)

	err = repos.CourseRepository.Create(ctx, &models.Course{Title: "Course 0", Bootcamp: bootcampID})
	var dupErr *apperrors.DuplicateFieldError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "title", dupErr.Field)

	n, err := repos.CourseRepository.DeleteByBootcamp(ctx, bootcampID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, found, err = repos.CourseRepository.AverageTuition(ctx, bootcampID)
	require.NoError(t, err)
	assert.False(t, found)
}
