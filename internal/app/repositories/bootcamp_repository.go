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

// bootcampRepository handles bootcamp database operations
type bootcampRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewBootcampRepository creates a BootcampRepository backed by coll
func NewBootcampRepository(coll *mongo.Collection, timeout time.Duration) BootcampRepository {
	return &bootcampRepository{coll: coll, timeout: timeout}
}

// Create inserts bootcamp and assigns its id
func (r *bootcampRepository) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if bootcamp.ID.IsZero() {
		bootcamp.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, bootcamp); err != nil {
		bootcamp.ID = primitive.NilObjectID
		if dberrors.IsDuplicateKeyError(err) {
			return dberrors.Translate(err, "name", bootcamp.Name)
		}
		logger.Error().Err(err).Msg("Error executing create bootcamp query")
		return fmt.Errorf("error creating bootcamp: %w", err)
	}
	return nil
}

// FindAll retrieves all bootcamps in insertion order
func (r *bootcampRepository) FindAll(ctx context.Context) ([]*models.Bootcamp, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error querying bootcamps: %w", err)
	}

	bootcamps := []*models.Bootcamp{}
	if err := cursor.All(ctx, &bootcamps); err != nil {
		return nil, fmt.Errorf("error decoding bootcamps: %w", err)
	}
	return bootcamps, nil
}

// FindByID retrieves a bootcamp by id
func (r *bootcampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	bootcamp := &models.Bootcamp{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(bootcamp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting bootcamp by ID: %w", err)
	}
	return bootcamp, nil
}

// FindSummaries retrieves the name/description projection of every bootcamp in ids
func (r *bootcampRepository) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.BootcampSummary, error) {
	summaries := make(map[primitive.ObjectID]*models.BootcampSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "description", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying bootcamp summaries: %w", err)
	}

	var found []*models.BootcampSummary
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("error decoding bootcamp summaries: %w", err)
	}
	for _, s := range found {
		summaries[s.ID] = s
	}
	return summaries, nil
}

// Update sets the client editable fields of bootcamp
func (r *bootcampRepository) Update(ctx context.Context, bootcamp *models.Bootcamp) (*models.Bootcamp, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          bootcamp.Name,
		"description":   bootcamp.Description,
		"website":       bootcamp.Website,
		"phone":         bootcamp.Phone,
		"email":         bootcamp.Email,
		"address":       bootcamp.Address,
		"careers":       bootcamp.Careers,
		"housing":       bootcamp.Housing,
		"jobAssistance": bootcamp.JobAssistance,
		"jobGuarantee":  bootcamp.JobGuarantee,
		"acceptGi":      bootcamp.AcceptGi,
		"photo":         bootcamp.Photo,
	}}

	updated := &models.Bootcamp{}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": bootcamp.ID}, update, opts).Decode(updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if dberrors.IsDuplicateKeyError(err) {
			return nil, dberrors.Translate(err, "name", bootcamp.Name)
		}
		logger.Error().Err(err).Str("bootcampID", bootcamp.ID.Hex()).Msg("Error executing update bootcamp query")
		return nil, fmt.Errorf("error updating bootcamp: %w", err)
	}
	return updated, nil
}

// Delete removes a bootcamp and returns the removed document
func (r *bootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	deleted := &models.Bootcamp{}
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error deleting bootcamp: %w", err)
	}
	return deleted, nil
}

// SetAverageCost writes the derived average cost in a single update
func (r *bootcampRepository) SetAverageCost(ctx context.Context, id primitive.ObjectID, cost *int) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$unset": bson.M{"averageCost": ""}}
	if cost != nil {
		update = bson.M{"$set": bson.M{"averageCost": *cost}}
	}

	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("error updating bootcamp average cost: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
