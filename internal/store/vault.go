package store

import (
	"sync"

	"go.uber.org/zap"

	"udwallet/internal/logging"
)

// Vault identifiers of the two secure backends.
const (
	LocalVaultName = "unstoppable-keychain"
	CloudVaultName = "unstoppable-icloud-storage"
)

// Vault is a secure key/value string store.
type Vault interface {
	// Name identifies the vault, e.g. LocalVaultName.
	Name() string
	// Store sets key to value, replacing any previous value.
	Store(value, key string) error
	// RetrieveValue returns the value for key. A miss is logged as a failure
	// when isCritical is true, and as expected otherwise.
	RetrieveValue(key string, isCritical bool) (string, bool)
	// Clear removes key. Clearing a missing key is not an error.
	Clear(key string) error
}

// MemoryVault is a Vault held in process memory.
type MemoryVault struct {
	name   string
	mu     sync.RWMutex
	values map[string]string
	logger *zap.Logger
}

// NewMemoryVault returns an empty MemoryVault called name.
func NewMemoryVault(name string, logger *zap.Logger) *MemoryVault {
	return &MemoryVault{
		name:   name,
		values: make(map[string]string),
		logger: logging.OrNop(logger).Named("store.vault").With(zap.String("vault", name)),
	}
}

// Name returns the vault identifier.
func (v *MemoryVault) Name() string { return v.name }

// Store sets key to value.
func (v *MemoryVault) Store(value, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[key] = value
	return nil
}

// RetrieveValue returns the value stored under key.
func (v *MemoryVault) RetrieveValue(key string, isCritical bool) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	value, ok := v.values[key]
	if !ok {
		logMiss(v.logger, key, isCritical)
	}
	return value, ok
}

// Clear removes key.
func (v *MemoryVault) Clear(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.values, key)
	return nil
}

func logMiss(logger *zap.Logger, key string, isCritical bool) {
	if isCritical {
		logger.Error("vault value not found", zap.String("key", key))
		return
	}
	logger.Debug("vault value absent", zap.String("key", key))
}

// Compile-time assertions.
var (
	_ Vault = (*MemoryVault)(nil)
	_ Vault = (*FileVault)(nil)
)
