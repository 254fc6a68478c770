package cache

import (
	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const (
	backupKey           = "ud_backup"
	backupSchemaVersion = 1
)

// WalletBackupStorage keeps encrypted wallet backups in the cloud-synced vault.
// Concurrent edits from another device are last-writer-wins.
type WalletBackupStorage struct {
	storage *store.SecurePersistedStorage[domain.BackedUpWallet]
}

// NewWalletBackupStorage returns the backup cache.
func NewWalletBackupStorage(deps Deps) (*WalletBackupStorage, error) {
	s, err := store.NewSecurePersistedStorage[domain.BackedUpWallet](
		deps.CloudVault, deps.Registry, backupKey, backupSchemaVersion, deps.logger("backup"), deps.Metrics,
	)
	if err != nil {
		return nil, err
	}
	return &WalletBackupStorage{storage: s}, nil
}

// GetWallets returns every backed-up wallet.
func (s *WalletBackupStorage) GetWallets() []domain.BackedUpWallet {
	return s.storage.GetElements()
}

// BackedUpWallets returns the backups protected by passwordHash.
func (s *WalletBackupStorage) BackedUpWallets(passwordHash string) []domain.BackedUpWallet {
	var out []domain.BackedUpWallet
	for _, w := range s.storage.GetElements() {
		if w.PasswordHash == passwordHash {
			out = append(out, w)
		}
	}
	return out
}

// Save upserts a backup keyed by address and password hash.
func (s *WalletBackupStorage) Save(wallet domain.BackedUpWallet) error {
	key := domain.NormalizeAddress(wallet.Address)
	return s.storage.Update(func(cur []domain.BackedUpWallet) []domain.BackedUpWallet {
		for i, w := range cur {
			if domain.NormalizeAddress(w.Address) == key && w.PasswordHash == wallet.PasswordHash {
				cur[i] = wallet
				return cur
			}
		}
		return append(cur, wallet)
	})
}

// Remove drops every backup of address.
func (s *WalletBackupStorage) Remove(address string) error {
	key := domain.NormalizeAddress(address)
	return s.storage.Update(func(cur []domain.BackedUpWallet) []domain.BackedUpWallet {
		out := make([]domain.BackedUpWallet, 0, len(cur))
		for _, w := range cur {
			if domain.NormalizeAddress(w.Address) != key {
				out = append(out, w)
			}
		}
		return out
	})
}

// Clear removes all backups.
func (s *WalletBackupStorage) Clear() error { return s.storage.Clear() }

// Close stops the underlying worker.
func (s *WalletBackupStorage) Close() { s.storage.Close() }
