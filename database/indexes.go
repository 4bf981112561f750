package database

import (
	"context"
	"fmt"
	"time"

	"kpidashboard/config"
	repository "kpidashboard/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateSnapshotIndexes(db *mongo.Database) error {
	collection := db.Collection(repository.SnapshotsCollection)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		// Used by: operators inspecting the most recently written snapshots
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_updated_at"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create snapshot indexes: %w", err)
	}

	config.Logger.Info("Snapshot indexes created successfully")
	return nil
}
