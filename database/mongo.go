package database

import (
	"context"
	"fmt"
	"time"

	"kpidashboard/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a client for cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.ConnectionURI())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	config.Logger.Info("Successfully connected to MongoDB")
	return client, nil
}

// IsReplicaSet reports whether the server is a replica set member, which is
// what multi-document transactions need.
func IsReplicaSet(ctx context.Context, client *mongo.Client) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	log := config.Logger.WithField("component", "mongo")

	var result bson.M
	err := client.Database("admin").RunCommand(ctx, bson.M{"hello": 1}).Decode(&result)
	if err != nil {
		log.WithError(err).Warn("Error checking replica set")
		return false
	}

	if setName, exists := result["setName"]; exists {
		log.WithField("set_name", setName).Info("Part of replica set")
		return true
	}

	log.Info("Not part of a replica set, snapshot batches are written without transactions")
	return false
}
