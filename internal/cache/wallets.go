package cache

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const walletsFileName = "wallets.data"

// WalletsStorage caches wallet records, unique by normalized address.
type WalletsStorage struct {
	*fileCache[domain.Wallet]
}

// NewWalletsStorage returns the wallet cache backed by wallets.data.
func NewWalletsStorage(deps Deps) (*WalletsStorage, error) {
	c, err := newFileCache[domain.Wallet](deps, "wallets", store.Documents, walletsFileName)
	if err != nil {
		return nil, err
	}
	return &WalletsStorage{fileCache: c}, nil
}

// GetWallets returns the cached wallets.
func (s *WalletsStorage) GetWallets() []domain.Wallet {
	return s.snapshot()
}

// Wallet looks a wallet up by address in any spelling.
func (s *WalletsStorage) Wallet(address string) (domain.Wallet, bool) {
	key := domain.NormalizeAddress(address)
	for _, w := range s.snapshot() {
		if w.NormalizedAddress() == key {
			return w, true
		}
	}
	return domain.Wallet{}, false
}

// Add appends wallet; if the address is already cached the preferred record wins.
func (s *WalletsStorage) Add(wallet domain.Wallet) error {
	return s.mutate(func(cur []domain.Wallet) ([]domain.Wallet, error) {
		return s.removeDuplicates(append(cur, wallet)), nil
	})
}

// Remove drops the wallet with address. Removing an unknown wallet is a no-op.
func (s *WalletsStorage) Remove(address string) error {
	key := domain.NormalizeAddress(address)
	return s.mutate(func(cur []domain.Wallet) ([]domain.Wallet, error) {
		out := make([]domain.Wallet, 0, len(cur))
		for _, w := range cur {
			if w.NormalizedAddress() != key {
				out = append(out, w)
			}
		}
		return out, nil
	})
}

// Rename sets the display name of the wallet with address.
func (s *WalletsStorage) Rename(address, name string) error {
	key := domain.NormalizeAddress(address)
	return s.mutate(func(cur []domain.Wallet) ([]domain.Wallet, error) {
		i := indexOfWallet(cur, key)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, address)
		}
		cur[i].Name = name
		return s.removeDuplicates(cur), nil
	})
}

// Replace swaps the wallet stored under address for wallet.
func (s *WalletsStorage) Replace(address string, wallet domain.Wallet) error {
	key := domain.NormalizeAddress(address)
	return s.mutate(func(cur []domain.Wallet) ([]domain.Wallet, error) {
		i := indexOfWallet(cur, key)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, address)
		}
		cur[i] = wallet
		return s.removeDuplicates(cur), nil
	})
}

// Set replaces the whole cache with wallets, deduplicated.
func (s *WalletsStorage) Set(wallets []domain.Wallet) error {
	next := append([]domain.Wallet{}, wallets...)
	return s.mutate(func([]domain.Wallet) ([]domain.Wallet, error) {
		return s.removeDuplicates(next), nil
	})
}

// GetLowestIndexedName returns the first free name of the form "prefix",
// "prefix 2", "prefix 3"... The bare prefix occupies index 1.
func (s *WalletsStorage) GetLowestIndexedName(prefix string) string {
	return lowestIndexedName(s.snapshot(), prefix)
}

func lowestIndexedName(wallets []domain.Wallet, prefix string) string {
	used := make(map[int]bool, len(wallets))
	for _, w := range wallets {
		name := strings.TrimSpace(w.Name)
		if name == prefix {
			used[1] = true
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix+" ")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			used[n] = true
		}
	}
	for i := 1; ; i++ {
		if used[i] {
			continue
		}
		if i == 1 {
			return prefix
		}
		return fmt.Sprintf("%s %d", prefix, i)
	}
}

// removeDuplicates keeps one wallet per normalized address, picking the most
// preferred type (generated locally, then seed, then private key) and the
// first one found on ties. Output keeps first-appearance order.
func (s *WalletsStorage) removeDuplicates(wallets []domain.Wallet) []domain.Wallet {
	chosen := make(map[string]int, len(wallets))
	var order []string
	for i, w := range wallets {
		key := w.NormalizedAddress()
		j, seen := chosen[key]
		if !seen {
			chosen[key] = i
			order = append(order, key)
			continue
		}
		if w.Type.DuplicatePreference() < wallets[j].Type.DuplicatePreference() {
			chosen[key] = i
		}
	}
	if len(order) == len(wallets) {
		return wallets
	}

	s.logger.Warn("dropping duplicate wallets",
		zap.Int("before", len(wallets)),
		zap.Int("after", len(order)),
	)
	out := make([]domain.Wallet, 0, len(order))
	for _, key := range order {
		out = append(out, wallets[chosen[key]])
	}
	return out
}

func indexOfWallet(wallets []domain.Wallet, key string) int {
	for i, w := range wallets {
		if w.NormalizedAddress() == key {
			return i
		}
	}
	return -1
}

var _ domain.WalletStore = (*WalletsStorage)(nil)
