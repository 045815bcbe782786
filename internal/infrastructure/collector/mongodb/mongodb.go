// Package mongodb provides the MongoDB archive collector sink.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// Config holds MongoDB connection configuration.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Sink archives session reports into a MongoDB collection.
type Sink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewSink creates a new MongoDB sink and verifies the connection.
func NewSink(ctx context.Context, cfg Config) (*Sink, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Sink{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Deliver inserts the report into the archive collection. The report id is
// the document id, so redelivery of the same report is a duplicate-key error
// rather than a second document.
func (s *Sink) Deliver(ctx context.Context, report *models.SessionReport) error {
	if _, err := s.collection.InsertOne(ctx, report); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to archive report: %w", err)
	}
	return nil
}

// Ping checks if the MongoDB connection is alive.
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *Sink) Close() error {
	return s.client.Disconnect(context.Background())
}
