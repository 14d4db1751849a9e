// Package mirror keeps the local copy of receiving records as one JSON array
// under a single key of a key/value store.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
)

// DefaultKey is the key the records array is stored under
const DefaultKey = "receivedItems"

// Mirror serialises read-modify-write cycles within this process only.
// Separate processes sharing one store can still overwrite each other.
type Mirror struct {
	store repository.KeyValueStore
	key   string
	mu    sync.Mutex
}

// New creates a mirror over store. An empty key falls back to DefaultKey.
func New(store repository.KeyValueStore, key string) *Mirror {
	if key == "" {
		key = DefaultKey
	}
	return &Mirror{store: store, key: key}
}

// Load returns the stored records. A missing key is an empty mirror.
func (m *Mirror) Load(ctx context.Context) ([]entity.TransactionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read(ctx)
}

// Mutate loads the records, applies fn and writes the result back.
// Nothing is written when the stored value cannot be decoded or fn fails.
func (m *Mirror) Mutate(ctx context.Context, fn func([]entity.TransactionRecord) ([]entity.TransactionRecord, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.read(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	if next == nil {
		next = []entity.TransactionRecord{}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode mirror: %w", err)
	}
	if err := m.store.Put(ctx, m.key, data); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	return nil
}

func (m *Mirror) read(ctx context.Context) ([]entity.TransactionRecord, error) {
	data, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("read mirror: %w", err)
	}
	records := []entity.TransactionRecord{}
	if !found || len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode mirror: %w", err)
	}
	return records, nil
}
