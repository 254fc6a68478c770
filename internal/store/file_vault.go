package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"udwallet/internal/logging"
	"udwallet/internal/util/memzero"
)

const vaultFileExt = ".vault"

// FileVault is a Vault persisted as one encrypted file per vault. The key is
// derived once at open time; every write re-seals the whole key/value map.
type FileVault struct {
	name   string
	path   string
	salt   []byte
	params ScryptParams
	key    []byte
	mu     sync.Mutex
	logger *zap.Logger
}

// OpenFileVault opens (or creates) <dir>/<name>.vault. An existing vault keeps
// its own salt and scrypt parameters; params only apply to new vaults.
func OpenFileVault(dir, name, passphrase string, params ScryptParams, logger *zap.Logger) (*FileVault, error) {
	if passphrase == "" {
		return nil, errors.New("vault passphrase required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}
	v := &FileVault{
		name:   name,
		path:   filepath.Join(dir, name+vaultFileExt),
		logger: logging.OrNop(logger).Named("store.vault").With(zap.String("vault", name)),
	}

	b, err := readFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("reading vault %s: %w", name, err)
	}
	if b == nil {
		return v, v.create(passphrase, params)
	}

	sv, err := parseSealed(b)
	if err != nil {
		return nil, fmt.Errorf("%w: vault %s: %w", ErrDecodeFailed, name, err)
	}
	v.salt = sv.Salt
	v.params = ScryptParams{N: sv.N, R: sv.R, P: sv.P}
	if v.key, err = deriveKey(passphrase, v.salt, v.params); err != nil {
		return nil, fmt.Errorf("deriving vault key: %w", err)
	}
	pt, err := unseal(v.key, sv)
	if err != nil {
		memzero.Zero(v.key)
		return nil, err
	}
	memzero.Zero(pt)
	return v, nil
}

func (v *FileVault) create(passphrase string, params ScryptParams) error {
	salt, err := newSalt()
	if err != nil {
		return err
	}
	v.salt = salt
	v.params = params
	if v.key, err = deriveKey(passphrase, salt, params); err != nil {
		return fmt.Errorf("deriving vault key: %w", err)
	}
	return v.save(map[string]string{})
}

// Name returns the vault identifier.
func (v *FileVault) Name() string { return v.name }

// load must be called with mu held.
func (v *FileVault) load() (map[string]string, error) {
	b, err := readFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("%w: vault %s: %w", ErrReadFailed, v.name, err)
	}
	values := map[string]string{}
	if b == nil {
		return values, nil
	}
	sv, err := parseSealed(b)
	if err != nil {
		return nil, fmt.Errorf("%w: vault %s: %w", ErrDecodeFailed, v.name, err)
	}
	pt, err := unseal(v.key, sv)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(pt)
	if err := json.Unmarshal(pt, &values); err != nil {
		return nil, fmt.Errorf("%w: vault %s: %w", ErrDecodeFailed, v.name, err)
	}
	return values, nil
}

// save must be called with mu held.
func (v *FileVault) save(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: vault %s: %w", ErrEncodeFailed, v.name, err)
	}
	defer memzero.Zero(raw)
	blob, err := seal(v.key, v.salt, v.params, raw)
	if err != nil {
		return fmt.Errorf("%w: sealing vault %s: %w", ErrWriteFailed, v.name, err)
	}
	if err := writeFile(v.path, blob, 0o600); err != nil {
		return fmt.Errorf("%w: vault %s: %w", ErrWriteFailed, v.name, err)
	}
	return nil
}

// Store sets key to value.
func (v *FileVault) Store(value, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		v.logger.Error("loading vault failed", zap.String("key", key), zap.Error(err))
		return err
	}
	values[key] = value
	if err := v.save(values); err != nil {
		v.logger.Error("saving vault failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// RetrieveValue returns the value stored under key.
func (v *FileVault) RetrieveValue(key string, isCritical bool) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		v.logger.Error("loading vault failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	value, ok := values[key]
	if !ok {
		logMiss(v.logger, key, isCritical)
	}
	return value, ok
}

// Clear removes key.
func (v *FileVault) Clear(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return v.save(values)
}

// Close wipes the derived key. The vault is unusable afterwards.
func (v *FileVault) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	memzero.Zero(v.key)
}
