package session

import (
	"errors"
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore implements SnapshotStore using BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir)).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Close() error { return b.db.Close() }

func (b *BadgerStore) Save(id string, snap Snapshot) error {
	val, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(id), val)
	})
}

func (b *BadgerStore) Load(id string) (Snapshot, bool, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(id))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("badger get: %w", err)
	}
	snap, err := decodeSnapshot(val)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (b *BadgerStore) Delete(id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(id))
	})
}
