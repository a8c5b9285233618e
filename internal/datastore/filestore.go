// internal/datastore/filestore.go
package datastore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	bolt "go.etcd.io/bbolt"
)

var feedsBucket = []byte("feeds")

// ErrNotCached is returned by Get when no feed is stored for a date.
var ErrNotCached = errors.New("feed not cached")

// Store caches raw NEO feed responses keyed by date in a bbolt file.
type Store struct {
	db     *bolt.DB
	path   string
	logger log.Logger
}

// Open opens or creates the cache file at path.
func Open(logger log.Logger, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(feedsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache %s: %w", path, err)
	}
	s := &Store{
		db:     db,
		path:   path,
		logger: log.With(logger, "component", "datastore"),
	}
	level.Debug(s.logger).Log("msg", "cache opened", "path", path)
	return s, nil
}

// Path returns the cache file location.
func (s *Store) Path() string { return s.path }

// Get returns a copy of the feed cached for date, or ErrNotCached.
func (s *Store) Get(date string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(feedsBucket).Get([]byte(date))
		if v == nil {
			return ErrNotCached
		}
		// v is only valid for the life of the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put stores the raw feed for date, replacing any previous entry. The payload
// must be valid JSON.
func (s *Store) Put(date string, raw []byte) error {
	if !json.Valid(raw) {
		return fmt.Errorf("refusing to cache invalid JSON for %s", date)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(feedsBucket).Put([]byte(date), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to cache feed for %s: %w", date, err)
	}
	level.Debug(s.logger).Log("msg", "feed cached", "date", date, "bytes", len(raw))
	return nil
}

// Dates lists the cached dates in ascending order.
func (s *Store) Dates() ([]string, error) {
	var dates []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(feedsBucket).ForEach(func(k, _ []byte) error {
			dates = append(dates, string(k))
			return nil
		})
	})
	return dates, err
}

// Purge removes every cached feed and returns how many were removed.
func (s *Store) Purge() (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		n = tx.Bucket(feedsBucket).Stats().KeyN
		if err := tx.DeleteBucket(feedsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(feedsBucket)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	level.Info(s.logger).Log("msg", "cache purged", "entries", n)
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadFallback reads a previously saved feed file. A leading UTF-8 byte order
// mark is skipped and the content must be valid JSON.
func LoadFallback(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fallback file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback file %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("fallback file %s does not contain valid JSON", path)
	}
	return data, nil
}

// SaveFallback writes raw to path through a temporary file so a failed write
// never leaves a truncated fallback behind.
func SaveFallback(path string, raw []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary fallback file %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to commit fallback file from %s to %s: %w", tempPath, path, err)
	}
	return nil
}
