package storage

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/pantrychef/pantrychef/pkg/logger"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("key not found")

// Store represents a BadgerDB storage instance
type Store struct {
	db *badger.DB
}

// New creates a new BadgerDB storage instance
func New(dataDir string) (*Store, error) {
	absPath, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get absolute path")
	}

	opts := badger.DefaultOptions(absPath)
	opts.Logger = nil // Disable Badger's internal logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open BadgerDB")
	}

	logger.Global.Info("BadgerDB opened at %s", absPath)
	return &Store{db: db}, nil
}

// Close closes the BadgerDB database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Set stores a JSON-encoded value for a key
func (s *Store) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal value for %s", key)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Get retrieves a value for a key and decodes it into value
func (s *Store) Get(key string, value interface{}) error {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	if err != nil {
		if err == badger.ErrKeyNotFound {
			return errors.Wrap(ErrNotFound, key)
		}
		return errors.Wrapf(err, "failed to get %s", key)
	}

	return json.Unmarshal(data, value)
}

// Delete removes a key from the database
func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// List returns all keys with a given prefix
func (s *Store) List(prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			keys = append(keys, string(it.Item().Key()))
		}
		return nil
	})

	if err != nil {
		return nil, errors.Wrapf(err, "failed to list keys for prefix %s", prefix)
	}

	return keys, nil
}

// ForEach scans all values under a prefix in a single transaction and
// calls fn with each key and raw JSON value. Services use this instead
// of a List followed by N Gets.
func (s *Store) ForEach(prefix string, fn func(key string, data []byte) error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(val []byte) error {
				return fn(key, val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return errors.Wrapf(err, "failed to scan prefix %s", prefix)
}

// RunGC runs value-log garbage collection on the database
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// StartGCRoutine starts a goroutine that periodically runs garbage collection
func (s *Store) StartGCRoutine(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			err := s.RunGC()
			if err != nil {
				// Only log when GC actually did something
				if err != badger.ErrNoRewrite {
					logger.Global.Error("BadgerDB GC error: %v", err)
				}
			}
		}
	}()
	logger.Global.Info("Started BadgerDB GC routine with interval %v", interval)
}
