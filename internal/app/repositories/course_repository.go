package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/pkg/dberrors"
	"github.com/yigit/devcamper/internal/pkg/logger"
)

// courseRepository handles course database operations
type courseRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewCourseRepository creates a CourseRepository backed by coll
func NewCourseRepository(coll *mongo.Collection, timeout time.Duration) CourseRepository {
	return &courseRepository{coll: coll, timeout: timeout}
}

// Create inserts course and assigns its id
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		course.ID = primitive.NilObjectID
		if dberrors.IsDuplicateKeyError(err) {
			return dberrors.Translate(err, "title", course.Title)
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// FindAll retrieves the courses matching filter in insertion order
func (r *courseRepository) FindAll(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := bson.M{}
	if filter.BootcampID != nil {
		query["bootcamp"] = *filter.BootcampID
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}

	courses := []*models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	return courses, nil
}

// FindByID retrieves a course by id
func (r *courseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	course := &models.Course{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// Update sets every editable field of course and returns the stored document
func (r *courseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":                course.Title,
		"description":          course.Description,
		"weeks":                course.Weeks,
		"tuition":              course.Tuition,
		"minimumSkill":         course.MinimumSkill,
		"scholarshipAvailable": course.ScholarshipAvailable,
		"bootcamp":             course.Bootcamp,
		"user":                 course.User,
	}}

	updated := &models.Course{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": course.ID}, update, opts).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if dberrors.IsDuplicateKeyError(err) {
			return nil, dberrors.Translate(err, "title", course.Title)
		}
		logger.Error().Err(err).Str("courseID", course.ID.Hex()).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return updated, nil
}

// Delete removes a course and returns the removed document
func (r *courseRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	deleted := &models.Course{}
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error deleting course: %w", err)
	}
	return deleted, nil
}

// DeleteByBootcamp removes every course referencing bootcampID
func (r *courseRepository) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return 0, fmt.Errorf("error deleting courses of bootcamp: %w", err)
	}
	return res.DeletedCount, nil
}

// AverageTuition groups the bootcamp's courses and averages their tuition
func (r *courseRepository) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "bootcamp", Value: bootcampID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$bootcamp"},
			{Key: "averageCost", Value: bson.D{{Key: "$avg", Value: "$tuition"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("error aggregating course tuition: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return 0, false, fmt.Errorf("error reading tuition aggregate: %w", err)
		}
		return 0, false, nil
	}

	var result struct {
		AverageCost float64 `bson:"averageCost"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, false, fmt.Errorf("error decoding tuition aggregate: %w", err)
	}
	return result.AverageCost, true, nil
}
