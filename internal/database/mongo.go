package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"field-sales-ops-api-server/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectAttempts = 3

// Connect dials MongoDB with a fixed 3-attempt exponential backoff. This is
// the only retry loop in the system; individual operations are not retried.
func Connect(cfg config.Config) (*mongo.Database, error) {
	var lastErr error
	backoff := time.Second

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
		}
		cancel()

		if err == nil {
			log.Printf("Connected to MongoDB (attempt %d)", attempt)
			return client.Database(cfg.Mongo.DBName), nil
		}

		lastErr = err
		log.Printf("MongoDB connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", connectAttempts, lastErr)
}
