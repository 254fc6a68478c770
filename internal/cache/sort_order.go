package cache

import (
	"context"
	"sort"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const sortOrderKey = "sortOrderInfoMap"

// SortOrderStorage remembers the user's domain order per wallet.
type SortOrderStorage struct {
	storage *store.PreferencesStorage[domain.SortOrderInfo]
}

// NewSortOrderStorage returns the sort order preference store.
func NewSortOrderStorage(deps Deps) (*SortOrderStorage, error) {
	s, err := store.NewPreferencesStorage[domain.SortOrderInfo](
		deps.Prefs, deps.Registry, sortOrderKey, deps.logger("sort_order"), deps.Metrics,
	)
	if err != nil {
		return nil, err
	}
	return &SortOrderStorage{storage: s}, nil
}

// GetOrder returns the saved order for wallet, or nil when none is saved.
func (s *SortOrderStorage) GetOrder(wallet string) []string {
	key := domain.NormalizeAddress(wallet)
	for _, info := range s.storage.RetrieveAll() {
		if domain.NormalizeAddress(info.WalletAddress) == key {
			return info.DomainNames
		}
	}
	return nil
}

// SaveOrder stores the domain order for wallet, replacing any previous one.
func (s *SortOrderStorage) SaveOrder(ctx context.Context, wallet string, domainNames []string) error {
	key := domain.NormalizeAddress(wallet)
	info := domain.SortOrderInfo{WalletAddress: key, DomainNames: append([]string{}, domainNames...)}
	return store.Wait(ctx, s.storage.Substitute(func(i domain.SortOrderInfo) bool {
		return domain.NormalizeAddress(i.WalletAddress) == key
	}, info))
}

// Remove forgets the order saved for wallet.
func (s *SortOrderStorage) Remove(ctx context.Context, wallet string) error {
	key := domain.NormalizeAddress(wallet)
	return s.storage.Remove(ctx, func(i domain.SortOrderInfo) bool {
		return domain.NormalizeAddress(i.WalletAddress) == key
	})
}

// ApplyOrder sorts domains by the order saved for wallet. Domains missing from
// the saved order keep their relative position after the ordered ones.
func (s *SortOrderStorage) ApplyOrder(wallet string, domains []domain.Domain) []domain.Domain {
	order := s.GetOrder(wallet)
	out := append([]domain.Domain{}, domains...)
	if len(order) == 0 {
		return out
	}
	rank := make(map[string]int, len(order))
	for i, n := range order {
		rank[domain.NormalizeDomainName(n)] = i
	}
	position := func(d domain.Domain) int {
		if r, ok := rank[d.Key()]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(out, func(i, j int) bool { return position(out[i]) < position(out[j]) })
	return out
}

// Clear removes every saved order.
func (s *SortOrderStorage) Clear() error { return <-s.storage.RemoveAll() }

// Close stops the underlying worker.
func (s *SortOrderStorage) Close() { s.storage.Close() }
