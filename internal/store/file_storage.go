package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"udwallet/internal/logging"
	"udwallet/internal/metrics"
)

// Directory names one of the OS-provided base directories.
type Directory int

const (
	// Documents holds data that should survive cache purges.
	Documents Directory = iota
	// Caches holds data the OS (or user) may drop at any time.
	Caches
)

// String returns the directory name used in logs and registry keys.
func (d Directory) String() string {
	switch d {
	case Documents:
		return "documents"
	case Caches:
		return "caches"
	default:
		return fmt.Sprintf("directory(%d)", int(d))
	}
}

// FileStorage reads and writes single JSON values to named files. It keeps no
// state in memory; every call touches the filesystem. Concurrent writers to
// the same file must be serialised by the caller.
type FileStorage struct {
	dirs    map[Directory]string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewFileStorage returns a FileStorage over the given directory roots.
func NewFileStorage(dirs map[Directory]string, logger *zap.Logger, m *metrics.Metrics) *FileStorage {
	roots := make(map[Directory]string, len(dirs))
	for d, p := range dirs {
		roots[d] = p
	}
	return &FileStorage{
		dirs:    roots,
		logger:  logging.OrNop(logger).Named("store.file"),
		metrics: m,
	}
}

func (s *FileStorage) root(dir Directory) (string, error) {
	root, ok := s.dirs[dir]
	if !ok || root == "" {
		return "", fmt.Errorf("%w: %s", ErrNoDirectory, dir)
	}
	return root, nil
}

// Store encodes value and writes it to <dir>/<fileName>, creating the file if
// absent and atomically replacing it otherwise.
func (s *FileStorage) Store(value any, dir Directory, fileName string) error {
	root, err := s.root(dir)
	if err != nil {
		return err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncodeFailed, fileName, err)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, fileName, err)
	}
	err = writeFile(filepath.Join(root, fileName), b, 0o600)
	s.metrics.ObserveWrite(fileName, err)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, fileName, err)
	}
	return nil
}

// Retrieve decodes the file <dir>/<fileName> as T. A file that was never
// written yields ErrFileNotFound, distinct from ErrReadFailed and ErrDecodeFailed.
func Retrieve[T any](s *FileStorage, fileName string, dir Directory) (T, error) {
	var out T
	root, err := s.root(dir)
	if err != nil {
		return out, err
	}
	b, err := os.ReadFile(filepath.Join(root, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return out, fmt.Errorf("%w: %s", ErrFileNotFound, fileName)
	}
	if err != nil {
		return out, fmt.Errorf("%w: %s: %w", ErrReadFailed, fileName, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		s.metrics.IncrementDecodeFailures(fileName)
		return out, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, fileName, err)
	}
	return out, nil
}

// Remove deletes <dir>/<fileName>. Removing a missing file is not an error.
func (s *FileStorage) Remove(fileName string, dir Directory) error {
	root, err := s.root(dir)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(root, fileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing %s: %w", ErrWriteFailed, fileName, err)
	}
	return nil
}

// FileExists reports whether <dir>/<fileName> exists.
func (s *FileStorage) FileExists(fileName string, dir Directory) bool {
	root, err := s.root(dir)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(root, fileName))
	return err == nil
}

// Clear deletes every file in dir. Per-file failures are logged and skipped.
func (s *FileStorage) Clear(dir Directory) {
	root, err := s.root(dir)
	if err != nil {
		s.logger.Warn("clear skipped", zap.Stringer("directory", dir), zap.Error(err))
		return
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("listing directory failed", zap.Stringer("directory", dir), zap.Error(err))
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(root, e.Name())); err != nil {
			s.logger.Debug("removing file failed", zap.String("file", e.Name()), zap.Error(err))
		}
	}
}
