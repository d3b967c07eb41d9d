package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleStore implements SnapshotStore using PebbleDB.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func (p *PebbleStore) Save(id string, snap Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	// Snapshots are best-effort, so skip the fsync.
	if err := p.db.Set(snapshotKey(id), b, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleStore) Load(id string) (Snapshot, bool, error) {
	v, closer, err := p.db.Get(snapshotKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()
	snap, err := decodeSnapshot(v)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (p *PebbleStore) Delete(id string) error {
	if err := p.db.Delete(snapshotKey(id), pebble.NoSync); err != nil {
		return fmt.Errorf("pebble delete: %w", err)
	}
	return nil
}
