package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

// Snapshot is the restorable state of a build session.
type Snapshot struct {
	Selection models.BuildSelection `json:"selection"`
	Step      int                   `json:"step"`
	Version   uint64                `json:"version"`
	SavedAt   time.Time             `json:"savedAt"`
}

// SnapshotStore is the key-value store sessions are written to after every mutation.
type SnapshotStore interface {
	Save(id string, snap Snapshot) error
	// Load returns false when no snapshot exists for id.
	Load(id string) (Snapshot, bool, error)
	Delete(id string) error
	Close() error
}

const keyPrefix = "session/"

func snapshotKey(id string) []byte { return []byte(keyPrefix + id) }

func encodeSnapshot(snap Snapshot) ([]byte, error) { return json.Marshal(snap) }

func decodeSnapshot(val []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Selection == nil {
		snap.Selection = models.BuildSelection{}
	}
	return snap, nil
}

// MemoryStore keeps encoded snapshots in a map. Storing bytes rather than values keeps restored sessions
// independent of the live ones.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Save(id string, snap Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = b
	return nil
}

func (m *MemoryStore) Load(id string) (Snapshot, bool, error) {
	m.mu.RLock()
	b, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, false, nil
	}
	snap, err := decodeSnapshot(b)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// OpenSnapshotStore opens the configured backend: "memory", "pebble" or "badger".
func OpenSnapshotStore(backend, dir string) (SnapshotStore, error) {
	switch strings.ToLower(backend) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "pebble":
		return NewPebbleStore(dir)
	case "badger":
		return NewBadgerStore(dir)
	}
	return nil, fmt.Errorf("unknown session backend %q", backend)
}
