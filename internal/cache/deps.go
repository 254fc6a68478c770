package cache

import (
	"go.uber.org/zap"

	"udwallet/internal/logging"
	"udwallet/internal/metrics"
	"udwallet/internal/store"
)

// Deps are the shared backends every cache is built from. Fields a cache does
// not use may be left nil.
type Deps struct {
	Files      *store.FileStorage
	Prefs      store.Preferences
	LocalVault store.Vault
	CloudVault store.Vault
	Registry   *store.Registry
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

func (d Deps) logger(name string) *zap.Logger {
	return logging.OrNop(d.Logger).Named("cache." + name)
}

// fileCache is the common shape of a cache persisted as a JSON array in one file.
type fileCache[T any] struct {
	name    string
	storage *store.SpecificStorage[[]T]
	worker  *store.Worker
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newFileCache[T any](deps Deps, name string, dir store.Directory, fileName string) (*fileCache[T], error) {
	s, err := store.NewSpecificStorage[[]T](deps.Files, deps.Registry, dir, fileName)
	if err != nil {
		return nil, err
	}
	return &fileCache[T]{
		name:    name,
		storage: s,
		worker:  store.NewWorker(),
		logger:  deps.logger(name),
		metrics: deps.Metrics,
	}, nil
}

// snapshot returns the cached elements; never-cached and unreadable both read as empty.
func (c *fileCache[T]) snapshot() []T {
	v, ok := c.storage.Retrieve()
	if !ok || v == nil {
		return []T{}
	}
	return v
}

// mutate runs a read-modify-write on the worker and blocks until it is stored.
func (c *fileCache[T]) mutate(fn func([]T) ([]T, error)) error {
	return c.worker.Do(func() error {
		next, err := fn(c.snapshot())
		if err != nil {
			return err
		}
		if err := c.storage.Store(next); err != nil {
			return err
		}
		c.metrics.SetCacheEntries(c.name, len(next))
		return nil
	})
}

// Clear removes the backing file.
func (c *fileCache[T]) Clear() error {
	return c.worker.Do(func() error {
		if err := c.storage.Remove(); err != nil {
			c.logger.Error("clearing cache failed", zap.Error(err))
			return err
		}
		c.metrics.SetCacheEntries(c.name, 0)
		return nil
	})
}

// Close stops the worker after queued mutations finish.
func (c *fileCache[T]) Close() { c.worker.Close() }
