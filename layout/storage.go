package layout

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
)

// Storage is the key/value capability a group persists its sizes through. It
// is owned by the caller. Implementations must be safe for use from the
// persistence timer goroutine.
type Storage interface {
	// GetItem returns the stored value and whether one exists.
	GetItem(key string) (string, bool)
	// SetItem stores value under key.
	SetItem(key, value string) error
}

// StorageKey returns the key a group with the given storage id persists under.
func StorageKey(storageID string) string {
	return StorageKeyPrefix + storageID
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

// GetItem implements Storage.
func (m *MemoryStorage) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

// SetItem implements Storage.
func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// encodeSizes renders sizes as the persisted JSON array.
func encodeSizes(sizes []float64) (string, error) {
	data, err := json.Marshal(sizes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sizes: %w", err)
	}
	return string(data), nil
}

// decodeSizes parses a persisted layout and checks it fits panelCount panels.
// Sizes that do not sum to TotalSize are returned as stored; the caller
// rescales them.
func decodeSizes(raw string, panelCount int) ([]float64, error) {
	var sizes []float64
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return nil, fmt.Errorf("failed to parse persisted layout: %w", err)
	}
	if len(sizes) != panelCount {
		return nil, fmt.Errorf("persisted layout has %d sizes, group has %d panels", len(sizes), panelCount)
	}
	for i, s := range sizes {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 || s > TotalSize {
			return nil, fmt.Errorf("persisted size %d out of range: %v", i, s)
		}
	}
	if sum(sizes) <= 0 {
		return nil, fmt.Errorf("persisted sizes are all zero")
	}
	return sizes, nil
}
