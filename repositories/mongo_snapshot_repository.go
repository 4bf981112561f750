package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SnapshotsCollection holds one document per snapshot key.
const SnapshotsCollection = "snapshots"

type snapshotDocument struct {
	Key       string        `bson:"_id"`
	Data      bson.RawValue `bson:"data"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

type mongoSnapshotRepository struct {
	collection      *mongo.Collection
	useTransactions bool
}

// NewMongoSnapshotRepository stores snapshots in the snapshots collection of
// db. Batches are written in a transaction when useTransactions is set, which
// requires a replica set.
func NewMongoSnapshotRepository(db *mongo.Database, useTransactions bool) SnapshotRepository {
	return &mongoSnapshotRepository{
		collection:      db.Collection(SnapshotsCollection),
		useTransactions: useTransactions,
	}
}

func (r *mongoSnapshotRepository) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}

	if err := doc.Data.Unmarshal(out); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

func (r *mongoSnapshotRepository) Save(ctx context.Context, key string, v interface{}) error {
	doc := bson.M{
		"_id":        key,
		"data":       v,
		"updated_at": time.Now(),
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

func (r *mongoSnapshotRepository) SaveBatch(ctx context.Context, snapshots []Snapshot) error {
	if !r.useTransactions {
		return saveSequentially(ctx, r, snapshots)
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		return nil, saveSequentially(sessionCtx, r, snapshots)
	})
	if err != nil {
		return fmt.Errorf("snapshot transaction failed: %w", err)
	}
	return nil
}

func (r *mongoSnapshotRepository) Close(ctx context.Context) error {
	return r.collection.Database().Client().Disconnect(ctx)
}
