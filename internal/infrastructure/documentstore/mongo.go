package documentstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookshelf-backend/internal/config"
)

// MongoStore wraps the client for the review document store.
type MongoStore struct {
	Client *mongo.Client
	Config *config.MongoConfig
}

func NewMongoStore(cfg *config.MongoConfig) *MongoStore {
	return &MongoStore{Config: cfg}
}

// Connect establishes and pings the client.
func (s *MongoStore) Connect(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(s.Config.URI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping failed: %w", err)
	}

	s.Client = client
	return nil
}

// Reviews returns the review collection handle.
func (s *MongoStore) Reviews() *mongo.Collection {
	return s.Client.Database(s.Config.Database).Collection(s.Config.Collection)
}

// EnsureIndexes creates the (book_id, created_at desc) index backing the
// newest-first listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Reviews().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "book_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure review indexes: %w", err)
	}
	return nil
}

// HealthCheck pings the document store.
func (s *MongoStore) HealthCheck(ctx context.Context) error {
	if s.Client == nil {
		return fmt.Errorf("mongo client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Client.Ping(healthCtx, nil); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) {
	if s.Client != nil {
		_ = s.Client.Disconnect(ctx)
	}
}
