package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/md-toc/pkg/log"
	"github.com/Sriram-PR/md-toc/pkg/models"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

const (
	docKeyPrefix = "doc:"         // Prefix for document path keys in DB
	stateDBDir   = "toc_state_db" // Subdirectory name within stateDir for Badger DB files
)

// BadgerStore implements DocumentStore using BadgerDB
type BadgerStore struct {
	db       *badger.DB
	log      *logrus.Entry
	keyCount atomic.Int64 // Cached key count for O(1) Count
}

// NewBadgerStore opens (or creates) the state database under stateDir
func NewBadgerStore(stateDir string, logger *logrus.Entry) (*BadgerStore, error) {
	store := &BadgerStore{log: logger.WithField("component", "state")}

	dbPath := filepath.Join(stateDir, stateDBDir)
	store.log.Debugf("Opening document state database at: %s", dbPath)

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create state directory %s: %w", utils.ErrFilesystem, dbPath, err)
	}

	opts := badger.DefaultOptions(dbPath).
		WithLogger(log.NewBadgerLogger(logger)).
		WithNumVersionsToKeep(1) // Only the latest entry per document matters

	var err error
	store.db, err = badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger database at %s: %w", utils.ErrDatabase, dbPath, err)
	}

	count, err := store.countKeys()
	if err != nil {
		store.log.Warnf("Failed to count existing documents: %v", err)
	} else {
		store.keyCount.Store(int64(count))
		store.log.Debugf("Document state database holds %d entries", count)
	}
	return store, nil
}

// countKeys performs a one-time full key scan at open
func (s *BadgerStore) countKeys() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(docKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

const maxConflictRetries = 10

// dbUpdate wraps db.Update with a retry loop for BadgerDB transaction conflicts.
// Concurrent transactions on the same key return badger.ErrConflict;
// these resolve in microseconds, so a tight retry loop is sufficient.
func (s *BadgerStore) dbUpdate(fn func(txn *badger.Txn) error) error {
	for i := range maxConflictRetries {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		s.log.Debugf("BadgerDB transaction conflict (attempt %d/%d), retrying", i+1, maxConflictRetries)
	}
	return fmt.Errorf("%w: transaction conflict not resolved after %d retries", utils.ErrDatabase, maxConflictRetries)
}

// GetDocumentEntry implements DocumentStore
func (s *BadgerStore) GetDocumentEntry(path string) (models.FileStatus, *models.DocumentEntry, error) {
	status := models.FileStatusNotFound
	var entry *models.DocumentEntry
	key := []byte(docKeyPrefix + path)

	errView := s.db.View(func(txn *badger.Txn) error {
		item, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			return nil
		}
		if errGet != nil {
			return fmt.Errorf("%w: failed getting document key '%s': %w", utils.ErrDatabase, string(key), errGet)
		}

		return item.Value(func(val []byte) error {
			var decoded models.DocumentEntry
			if errJSON := json.Unmarshal(val, &decoded); errJSON != nil {
				s.log.Warnf("Failed to unmarshal DocumentEntry for key '%s': %v. Treating as not found.", string(key), errJSON)
				return nil
			}
			entry = &decoded
			status = decoded.Status
			return nil
		})
	})

	if errView != nil {
		s.log.Errorf("DB View error in GetDocumentEntry for key '%s': %v", string(key), errView)
		return models.FileStatusDBError, nil, errView
	}
	return status, entry, nil
}

// UpdateDocumentEntry implements DocumentStore
func (s *BadgerStore) UpdateDocumentEntry(path string, entry *models.DocumentEntry) error {
	if s.db == nil {
		return fmt.Errorf("%w: state database not initialized", utils.ErrDatabase)
	}
	key := []byte(docKeyPrefix + path)

	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal DocumentEntry for '%s': %w", utils.ErrDatabase, path, err)
	}

	added := false
	err = s.dbUpdate(func(txn *badger.Txn) error {
		_, errGet := txn.Get(key)
		added = errors.Is(errGet, badger.ErrKeyNotFound)
		return txn.Set(key, entryBytes)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to update document '%s': %w", utils.ErrDatabase, path, err)
	}
	if added {
		s.keyCount.Add(1)
	}
	return nil
}

// Count implements DocumentStore
func (s *BadgerStore) Count() (int, error) {
	return int(s.keyCount.Load()), nil
}

// RunGC runs periodic value log garbage collection until ctx is done.
// Should be run in a goroutine by long-running commands.
func (s *BadgerStore) RunGC(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Debug("BadgerDB GC goroutine started.")

	for {
		select {
		case <-ticker.C:
			if s.db == nil || s.db.IsClosed() {
				continue
			}

			var err error
			// Loop GC until it returns ErrNoRewrite or another error
			for {
				if err = s.db.RunValueLogGC(0.5); err != nil {
					break
				}
				s.log.Debug("BadgerDB GC cycle completed.")
			}
			if !errors.Is(err, badger.ErrNoRewrite) {
				s.log.Errorf("BadgerDB GC error: %v", err)
			}

		case <-ctx.Done():
			s.log.Debugf("Stopping BadgerDB garbage collection: %v", ctx.Err())
			return
		}
	}
}

// Close implements DocumentStore
func (s *BadgerStore) Close() error {
	if s.db == nil || s.db.IsClosed() {
		return nil
	}
	if err := s.db.Close(); err != nil {
		s.log.Errorf("Error closing state DB: %v", err)
		return fmt.Errorf("%w: closing state database: %w", utils.ErrDatabase, err)
	}
	s.log.Debug("State DB closed.")
	return nil
}
