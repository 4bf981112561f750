package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var snapshotsBucket = []byte("snapshots")

type boltSnapshotRepository struct {
	db *bolt.DB
}

// NewBoltSnapshotRepository opens (or creates) a local bbolt file holding one
// JSON value per snapshot key.
func NewBoltSnapshotRepository(path string) (SnapshotRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots bucket: %w", err)
	}

	return &boltSnapshotRepository{db: db}, nil
}

func (r *boltSnapshotRepository) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var data []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(snapshotsBucket).Get([]byte(key)); v != nil {
			// bolt values are only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

func (r *boltSnapshotRepository) Save(ctx context.Context, key string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// SaveBatch writes every snapshot in a single bolt transaction.
func (r *boltSnapshotRepository) SaveBatch(ctx context.Context, snapshots []Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)
		for _, s := range snapshots {
			data, err := json.Marshal(s.Value)
			if err != nil {
				return fmt.Errorf("failed to encode snapshot %s: %w", s.Key, err)
			}
			if err := b.Put([]byte(s.Key), data); err != nil {
				return fmt.Errorf("failed to write snapshot %s: %w", s.Key, err)
			}
		}
		return nil
	})
}

func (r *boltSnapshotRepository) Close(ctx context.Context) error {
	return r.db.Close()
}
