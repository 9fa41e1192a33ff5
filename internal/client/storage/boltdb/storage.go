package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/taskwire/taskwire/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketAuth           = []byte("auth")
	bucketBoards         = []byte("boards")
	bucketColumns        = []byte("columns")
	bucketCards          = []byte("cards")
	bucketTranscriptions = []byte("transcriptions")
	bucketSettings       = []byte("settings")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// Compile-time checks that Storage implements the storage interfaces
var (
	_ storage.AuthStorage  = (*Storage)(nil)
	_ storage.BoardStorage = (*Storage)(nil)
)

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	buckets := [][]byte{
		bucketAuth,
		bucketBoards,
		bucketColumns,
		bucketCards,
		bucketTranscriptions,
		bucketSettings,
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", string(name), err)
			}
		}
		return nil
	})
}
