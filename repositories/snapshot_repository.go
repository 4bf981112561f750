package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Snapshot keys, one per persisted collection.
const (
	EmployeesKey = "employees"
	KPIsKey      = "kpis"
)

// SnapshotRepository persists whole collections as opaque snapshots under a key.
type SnapshotRepository interface {
	// Load decodes the snapshot stored under key into out. It reports false
	// when nothing has been stored yet.
	Load(ctx context.Context, key string, out interface{}) (bool, error)
	Save(ctx context.Context, key string, v interface{}) error
	// SaveBatch writes several snapshots, atomically where the backend allows.
	SaveBatch(ctx context.Context, snapshots []Snapshot) error
	Close(ctx context.Context) error
}

type Snapshot struct {
	Key   string
	Value interface{}
}

func saveSequentially(ctx context.Context, r SnapshotRepository, snapshots []Snapshot) error {
	for _, s := range snapshots {
		if err := r.Save(ctx, s.Key, s.Value); err != nil {
			return err
		}
	}
	return nil
}

type memorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemorySnapshotRepository keeps snapshots in process memory. Values are
// stored encoded so callers never share state with the repository.
func NewMemorySnapshotRepository() SnapshotRepository {
	return &memorySnapshotRepository{snapshots: make(map[string][]byte)}
}

func (r *memorySnapshotRepository) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	data, ok := r.snapshots[key]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

func (r *memorySnapshotRepository) Save(ctx context.Context, key string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	r.mu.Lock()
	r.snapshots[key] = data
	r.mu.Unlock()
	return nil
}

func (r *memorySnapshotRepository) SaveBatch(ctx context.Context, snapshots []Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded := make(map[string][]byte, len(snapshots))
	for _, s := range snapshots {
		data, err := json.Marshal(s.Value)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot %s: %w", s.Key, err)
		}
		encoded[s.Key] = data
	}

	r.mu.Lock()
	for key, data := range encoded {
		r.snapshots[key] = data
	}
	r.mu.Unlock()
	return nil
}

func (r *memorySnapshotRepository) Close(ctx context.Context) error {
	return nil
}
