package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"udwallet/internal/logging"
	"udwallet/internal/metrics"
)

// File is the versioned envelope persisted by SecurePersistedStorage.
type File[T any] struct {
	SchemaVersion int `json:"schemaVersion"`
	Data          []T `json:"data"`
}

// SecurePersistedStorage is a schema-versioned collection kept as one JSON
// string under a single Vault key.
//
// A stored envelope whose schemaVersion differs from the compiled-in version
// is discarded: reads return empty and the next write replaces it. There is
// no migration path.
type SecurePersistedStorage[T any] struct {
	vault   Vault
	key     string
	version int
	worker  *Worker
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewSecurePersistedStorage claims key in vault and starts the store's worker.
func NewSecurePersistedStorage[T any](
	vault Vault,
	reg *Registry,
	key string,
	version int,
	logger *zap.Logger,
	m *metrics.Metrics,
) (*SecurePersistedStorage[T], error) {
	if err := reg.Claim(vaultNamespace(vault), key); err != nil {
		return nil, err
	}
	return &SecurePersistedStorage[T]{
		vault:   vault,
		key:     key,
		version: version,
		worker:  NewWorker(),
		logger: logging.OrNop(logger).Named("store.secure").With(
			zap.String("vault", vault.Name()),
			zap.String("key", key),
		),
		metrics: m,
	}, nil
}

// GetElements returns a snapshot of the stored collection.
func (s *SecurePersistedStorage[T]) GetElements() []T {
	return s.read().Data
}

func (s *SecurePersistedStorage[T]) empty() File[T] {
	return File[T]{SchemaVersion: s.version, Data: []T{}}
}

func (s *SecurePersistedStorage[T]) read() File[T] {
	raw, ok := s.vault.RetrieveValue(s.key, false)
	if !ok {
		return s.empty()
	}
	var f File[T]
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		s.metrics.IncrementDecodeFailures(s.key)
		s.logger.Error("decoding persisted collection failed, treating as empty", zap.Error(err))
		return s.empty()
	}
	if f.SchemaVersion != s.version {
		s.metrics.IncrementSchemaDiscards(s.key)
		s.logger.Error("schema version mismatch, discarding persisted collection",
			zap.Int("stored", f.SchemaVersion),
			zap.Int("current", s.version),
		)
		return s.empty()
	}
	if f.Data == nil {
		f.Data = []T{}
	}
	return f
}

// mutate runs read-modify-write on the worker.
func (s *SecurePersistedStorage[T]) mutate(op string, fn func([]T) []T) error {
	return s.worker.Do(func() error {
		f := s.read()
		f.Data = fn(f.Data)
		f.SchemaVersion = s.version

		b, err := json.Marshal(f)
		if err != nil {
			s.logger.Warn("encoding persisted collection failed", zap.String("op", op), zap.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrEncodeFailed, s.key, err)
		}
		err = s.vault.Store(string(b), s.key)
		s.metrics.ObserveWrite(s.key, err)
		if err != nil {
			s.logger.Error("writing persisted collection failed", zap.String("op", op), zap.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, s.key, err)
		}
		return nil
	})
}

// Save replaces the whole collection.
func (s *SecurePersistedStorage[T]) Save(elements []T) error {
	next := append([]T{}, elements...)
	return s.mutate("save", func([]T) []T { return next })
}

// Append adds element to the end of the collection.
func (s *SecurePersistedStorage[T]) Append(element T) error {
	return s.mutate("append", func(cur []T) []T { return append(cur, element) })
}

// Update applies fn to the current collection and stores the result.
func (s *SecurePersistedStorage[T]) Update(fn func([]T) []T) error {
	return s.mutate("update", fn)
}

// Clear removes the collection from the vault.
func (s *SecurePersistedStorage[T]) Clear() error {
	return s.worker.Do(func() error {
		err := s.vault.Clear(s.key)
		s.metrics.ObserveWrite(s.key, err)
		if err != nil {
			s.logger.Error("clearing persisted collection failed", zap.Error(err))
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, s.key, err)
		}
		return nil
	})
}

// Close stops the worker after queued mutations finish.
func (s *SecurePersistedStorage[T]) Close() { s.worker.Close() }
