package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"synthchart/internal/model"
)

var runKeyPrefix = []byte("run/")

func runKey(id string) []byte {
	return append(append([]byte(nil), runKeyPrefix...), id...)
}

// BadgerStore keeps CBOR encoded runs in a badger database. An empty path
// opens an in-memory database.
type BadgerStore struct {
	path string

	mu sync.RWMutex
	db *badger.DB
}

func NewBadgerStore(path string) *BadgerStore {
	return &BadgerStore{path: path}
}

func (s *BadgerStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	opts := badger.DefaultOptions(s.path).WithLogger(nil)
	if s.path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("open badger store: %w", err)
	}
	s.db = db
	return nil
}

func (s *BadgerStore) SaveRun(_ context.Context, run model.Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRunCBOR(run)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.ID), payload)
	})
}

func (s *BadgerStore) GetRun(_ context.Context, id string) (model.Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Run{}, false, err
	}

	var payload []byte
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return model.Run{}, false, nil
		}
		return model.Run{}, false, err
	}

	run, err := DecodeRunCBOR(payload)
	if err != nil {
		return model.Run{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return run, true, nil
}

func (s *BadgerStore) ListRuns(_ context.Context, limit int) ([]model.Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	runs := make([]model.Run, 0, 16)
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = runKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			payload, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			run, err := DecodeRunCBOR(payload)
			if err != nil {
				return fmt.Errorf("decode run %s: %w", item.Key()[len(runKeyPrefix):], err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(runs)
	return applyLimit(runs, limit), nil
}

func (s *BadgerStore) DeleteRun(_ context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Delete(runKey(id))
	})
}

func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *BadgerStore) getDB() (*badger.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}
