package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Preferences is a small key/value store for non-sensitive settings.
type Preferences interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
	Close() error
}

// LevelPreferences stores preferences in LevelDB.
type LevelPreferences struct {
	db *leveldb.DB
}

// OpenLevelPreferences opens (or creates) a LevelDB database at path.
func OpenLevelPreferences(path string) (*LevelPreferences, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("preferences path required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve preferences path: %w", err)
	}
	db, err := leveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	return &LevelPreferences{db: db}, nil
}

// OpenMemoryPreferences returns preferences backed by in-memory LevelDB storage.
func OpenMemoryPreferences() (*LevelPreferences, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory preferences: %w", err)
	}
	return &LevelPreferences{db: db}, nil
}

// Get returns the value of key; found is false when the key is absent.
func (p *LevelPreferences) Get(key string) ([]byte, bool, error) {
	v, err := p.db.Get([]byte(key), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("%w: preference %s: %w", ErrReadFailed, key, err)
	}
	return v, true, nil
}

// Set stores value under key.
func (p *LevelPreferences) Set(key string, value []byte) error {
	if err := p.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%w: preference %s: %w", ErrWriteFailed, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (p *LevelPreferences) Delete(key string) error {
	if err := p.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%w: preference %s: %w", ErrWriteFailed, key, err)
	}
	return nil
}

// Keys lists stored keys starting with prefix.
func (p *LevelPreferences) Keys(prefix string) ([]string, error) {
	iter := p.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("%w: listing preferences: %w", ErrReadFailed, err)
	}
	return keys, nil
}

// Close releases the database.
func (p *LevelPreferences) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

var _ Preferences = (*LevelPreferences)(nil)
