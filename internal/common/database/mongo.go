// internal/common/database/mongo.go
package database

import (
	"context"
	"fmt"

	"biodata-service/internal/common/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient wraps the process-wide MongoDB client handle.
type MongoClient struct {
	Client   *mongo.Client
	Database string
}

// NewMongo connects a MongoDB client. The driver connects lazily, so callers
// should Ping before serving traffic.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(config.GetDuration(cfg.ConnectTimeout)).
		SetServerSelectionTimeout(config.GetDuration(cfg.ConnectTimeout)).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	return &MongoClient{Client: client, Database: cfg.Database}, nil
}

// Ping tests the connection against the primary
func (c *MongoClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Collection returns a handle on a collection of the configured database.
func (c *MongoClient) Collection(name string) *mongo.Collection {
	return c.Client.Database(c.Database).Collection(name)
}

// Close disconnects the client
func (c *MongoClient) Close(ctx context.Context) error {
	if c.Client != nil {
		return c.Client.Disconnect(ctx)
	}
	return nil
}
