package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"udwallet/internal/logging"
	"udwallet/internal/metrics"
)

// PreferencesStorage keeps a small collection of T as one JSON array under a
// preference key. Mutations and RetrieveAll go through the same worker, so a
// read always observes every mutation queued before it.
type PreferencesStorage[T any] struct {
	prefs   Preferences
	key     string
	worker  *Worker
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewPreferencesStorage claims key and starts the store's worker.
func NewPreferencesStorage[T any](
	prefs Preferences,
	reg *Registry,
	key string,
	logger *zap.Logger,
	m *metrics.Metrics,
) (*PreferencesStorage[T], error) {
	if err := reg.Claim(prefsNamespace, key); err != nil {
		return nil, err
	}
	return &PreferencesStorage[T]{
		prefs:   prefs,
		key:     key,
		worker:  NewWorker(),
		logger:  logging.OrNop(logger).Named("store.prefs").With(zap.String("key", key)),
		metrics: m,
	}, nil
}

func (s *PreferencesStorage[T]) load() []T {
	b, ok, err := s.prefs.Get(s.key)
	if err != nil {
		s.logger.Error("reading preference failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		s.metrics.IncrementDecodeFailures(s.key)
		s.logger.Error("decoding preference failed, treating as empty", zap.Error(err))
		return nil
	}
	return out
}

func (s *PreferencesStorage[T]) write(elements []T) error {
	b, err := json.Marshal(elements)
	if err != nil {
		s.logger.Warn("encoding preference failed", zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrEncodeFailed, s.key, err)
	}
	err = s.prefs.Set(s.key, b)
	s.metrics.ObserveWrite(s.key, err)
	if err != nil {
		s.logger.Error("writing preference failed", zap.Error(err))
	}
	return err
}

func (s *PreferencesStorage[T]) mutate(fn func([]T) []T) <-chan error {
	return s.worker.Submit(func() error {
		return s.write(fn(s.load()))
	})
}

// RetrieveAll blocks until every queued mutation has run and returns the
// stored elements.
func (s *PreferencesStorage[T]) RetrieveAll() []T {
	var out []T
	if err := s.worker.Do(func() error {
		out = s.load()
		return nil
	}); err != nil {
		// Closed worker: nothing can be queued any more, read directly.
		return s.load()
	}
	return out
}

// Save appends element. The returned channel reports the write result.
func (s *PreferencesStorage[T]) Save(element T) <-chan error {
	return s.mutate(func(cur []T) []T { return append(cur, element) })
}

// Substitute replaces every element matching match with element, appending
// it when nothing matched.
func (s *PreferencesStorage[T]) Substitute(match func(T) bool, element T) <-chan error {
	return s.mutate(func(cur []T) []T {
		out := make([]T, 0, len(cur)+1)
		replaced := false
		for _, e := range cur {
			if match(e) {
				if !replaced {
					out = append(out, element)
					replaced = true
				}
				continue
			}
			out = append(out, e)
		}
		if !replaced {
			out = append(out, element)
		}
		return out
	})
}

// RemoveAll deletes the preference key.
func (s *PreferencesStorage[T]) RemoveAll() <-chan error {
	return s.worker.Submit(func() error {
		err := s.prefs.Delete(s.key)
		s.metrics.ObserveWrite(s.key, err)
		return err
	})
}

// Remove deletes every element matching where and waits for the write.
func (s *PreferencesStorage[T]) Remove(ctx context.Context, where func(T) bool) error {
	return Wait(ctx, s.mutate(func(cur []T) []T {
		out := cur[:0:0]
		for _, e := range cur {
			if !where(e) {
				out = append(out, e)
			}
		}
		return out
	}))
}

// Replace swaps every element matching when for with and waits for the write.
// Nothing is appended when no element matches.
func (s *PreferencesStorage[T]) Replace(ctx context.Context, with T, when func(T) bool) error {
	return Wait(ctx, s.mutate(func(cur []T) []T {
		for i, e := range cur {
			if when(e) {
				cur[i] = with
			}
		}
		return cur
	}))
}

// Close stops the worker after queued mutations finish.
func (s *PreferencesStorage[T]) Close() { s.worker.Close() }
