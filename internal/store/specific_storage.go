package store

import (
	"errors"

	"go.uber.org/zap"
)

// SpecificStorage binds one file name and directory to a value type.
type SpecificStorage[T any] struct {
	files    *FileStorage
	dir      Directory
	fileName string
	logger   *zap.Logger
}

// NewSpecificStorage claims fileName in dir and returns a typed store for it.
func NewSpecificStorage[T any](
	files *FileStorage,
	reg *Registry,
	dir Directory,
	fileName string,
) (*SpecificStorage[T], error) {
	if err := reg.Claim(fileNamespace(dir), fileName); err != nil {
		return nil, err
	}
	return &SpecificStorage[T]{
		files:    files,
		dir:      dir,
		fileName: fileName,
		logger:   files.logger.With(zap.String("file", fileName)),
	}, nil
}

// FileName returns the backing file name.
func (s *SpecificStorage[T]) FileName() string { return s.fileName }

// Retrieve returns the stored value. A file that was never written reports
// false silently; read and decode failures are logged and also report false.
func (s *SpecificStorage[T]) Retrieve() (T, bool) {
	v, err := Retrieve[T](s.files, s.fileName, s.dir)
	if err == nil {
		return v, true
	}
	if !errors.Is(err, ErrFileNotFound) {
		s.logger.Error("retrieving cached value failed", zap.Error(err))
	}
	var zero T
	return zero, false
}

// Store writes v. A failure is logged and returned; the cache is left as it
// was and the write is retried the next time the owner stores.
func (s *SpecificStorage[T]) Store(v T) error {
	if err := s.files.Store(v, s.dir, s.fileName); err != nil {
		s.logger.Error("storing cached value failed", zap.Error(err))
		return err
	}
	return nil
}

// Remove deletes the backing file.
func (s *SpecificStorage[T]) Remove() error {
	return s.files.Remove(s.fileName, s.dir)
}
