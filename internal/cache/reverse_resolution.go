package cache

import (
	"context"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const reverseResolutionKey = "reverseResolutionInfoMap"

// ReverseResolutionStorage tracks reverse-resolution assignments, one per wallet.
type ReverseResolutionStorage struct {
	storage *store.PreferencesStorage[domain.ReverseResolutionInfo]
}

// NewReverseResolutionStorage returns the reverse-resolution preference store.
func NewReverseResolutionStorage(deps Deps) (*ReverseResolutionStorage, error) {
	s, err := store.NewPreferencesStorage[domain.ReverseResolutionInfo](
		deps.Prefs, deps.Registry, reverseResolutionKey, deps.logger("reverse_resolution"), deps.Metrics,
	)
	if err != nil {
		return nil, err
	}
	return &ReverseResolutionStorage{storage: s}, nil
}

func sameWallet(address string) func(domain.ReverseResolutionInfo) bool {
	key := domain.NormalizeAddress(address)
	return func(i domain.ReverseResolutionInfo) bool {
		return domain.NormalizeAddress(i.WalletAddress) == key
	}
}

// Save records info, replacing the previous assignment of the same wallet.
func (s *ReverseResolutionStorage) Save(ctx context.Context, info domain.ReverseResolutionInfo) error {
	info.WalletAddress = domain.NormalizeAddress(info.WalletAddress)
	info.Domain = domain.NormalizeDomainName(info.Domain)
	return store.Wait(ctx, s.storage.Substitute(sameWallet(info.WalletAddress), info))
}

// Get returns the assignment recorded for wallet.
func (s *ReverseResolutionStorage) Get(wallet string) (domain.ReverseResolutionInfo, bool) {
	match := sameWallet(wallet)
	for _, i := range s.storage.RetrieveAll() {
		if match(i) {
			return i, true
		}
	}
	return domain.ReverseResolutionInfo{}, false
}

// All returns every recorded assignment.
func (s *ReverseResolutionStorage) All() []domain.ReverseResolutionInfo {
	return s.storage.RetrieveAll()
}

// Remove forgets the assignment of wallet.
func (s *ReverseResolutionStorage) Remove(ctx context.Context, wallet string) error {
	return s.storage.Remove(ctx, sameWallet(wallet))
}

// Clear removes every assignment.
func (s *ReverseResolutionStorage) Clear() error { return <-s.storage.RemoveAll() }

// Close stops the underlying worker.
func (s *ReverseResolutionStorage) Close() { s.storage.Close() }
