package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yigit/devcamper/internal/app/models"
	"github.com/yigit/devcamper/internal/config"
	"github.com/yigit/devcamper/internal/pkg/logger"
)

// MongoDB document store connection structure
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB connects to the configured MongoDB deployment and verifies the
// connection with a ping against the primary.
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(cfg.Database.ConnectTimeout).
		SetAppName(cfg.Tracing.ServiceName)
	if cfg.Database.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// EnsureIndexes creates the unique indexes backing bootcamp name and course
// title uniqueness, plus the course lookup index on bootcamp.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		models.BootcampCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		models.CourseCollection: {
			{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "bootcamp", Value: 1}}},
		},
	}

	for collection, idx := range indexes {
		names, err := db.Database.Collection(collection).Indexes().CreateMany(ctx, idx)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		logger.Debug().Str("collection", collection).Strs("indexes", names).Msg("Indexes ensured")
	}
	return nil
}

// Close disconnects the client
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
