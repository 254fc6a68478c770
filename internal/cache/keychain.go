package cache

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const (
	passcodeKey       = "SA_passcode_key"
	installationIDKey = "analytics_uuid"
)

// PrivateKeyStorage keeps wallet private keys in the local vault, keyed by
// wallet address. Keys are addresses and so are not claimed in the registry.
type PrivateKeyStorage struct {
	vault  store.Vault
	logger *zap.Logger
}

// NewPrivateKeyStorage returns the private key store.
func NewPrivateKeyStorage(deps Deps) *PrivateKeyStorage {
	return &PrivateKeyStorage{vault: deps.LocalVault, logger: deps.logger("private_keys")}
}

// Store saves privateKey under the normalized address.
func (s *PrivateKeyStorage) Store(privateKey, address string) error {
	return s.vault.Store(privateKey, domain.NormalizeAddress(address))
}

// Retrieve returns the private key of address. Entries written before
// addresses were normalized are found under the raw address.
func (s *PrivateKeyStorage) Retrieve(address string) (string, error) {
	if v, ok := s.vault.RetrieveValue(domain.NormalizeAddress(address), false); ok {
		return v, nil
	}
	raw := strings.TrimSpace(address)
	if v, ok := s.vault.RetrieveValue(raw, true); ok {
		s.logger.Debug("private key found under legacy key", zap.String("address", raw))
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrPrivateKeyNotFound, address)
}

// Clear removes the private key of address under both key forms.
func (s *PrivateKeyStorage) Clear(address string) error {
	normalized := domain.NormalizeAddress(address)
	if err := s.vault.Clear(normalized); err != nil {
		return err
	}
	if raw := strings.TrimSpace(address); raw != normalized {
		return s.vault.Clear(raw)
	}
	return nil
}

// PasscodeStorage keeps the app passcode in the local vault.
type PasscodeStorage struct {
	vault store.Vault
}

// NewPasscodeStorage returns the passcode store.
func NewPasscodeStorage(deps Deps) (*PasscodeStorage, error) {
	if err := deps.Registry.ClaimVaultKey(deps.LocalVault, passcodeKey); err != nil {
		return nil, err
	}
	return &PasscodeStorage{vault: deps.LocalVault}, nil
}

// Store saves passcode.
func (s *PasscodeStorage) Store(passcode string) error { return s.vault.Store(passcode, passcodeKey) }

// Retrieve returns the stored passcode.
func (s *PasscodeStorage) Retrieve() (string, bool) { return s.vault.RetrieveValue(passcodeKey, false) }

// Clear removes the passcode.
func (s *PasscodeStorage) Clear() error { return s.vault.Clear(passcodeKey) }

// InstallationIDStorage hands out a random id that is stable for the lifetime
// of the local vault.
type InstallationIDStorage struct {
	mu    sync.Mutex
	vault store.Vault
}

// NewInstallationIDStorage returns the installation id store.
func NewInstallationIDStorage(deps Deps) (*InstallationIDStorage, error) {
	if err := deps.Registry.ClaimVaultKey(deps.LocalVault, installationIDKey); err != nil {
		return nil, err
	}
	return &InstallationIDStorage{vault: deps.LocalVault}, nil
}

// ID returns the installation id, generating and storing one on first use.
func (s *InstallationIDStorage) ID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vault.RetrieveValue(installationIDKey, false); ok {
		return v, nil
	}
	id := uuid.NewString()
	if err := s.vault.Store(id, installationIDKey); err != nil {
		return "", err
	}
	return id, nil
}

// Clear forgets the installation id; the next ID call generates a new one.
func (s *InstallationIDStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.Clear(installationIDKey)
}
