package cache

import (
	"fmt"

	"go.uber.org/zap"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const domainsFileName = "domains.data"

// DomainsStorage caches domain records, unique by normalized name.
type DomainsStorage struct {
	*fileCache[domain.Domain]
}

// NewDomainsStorage returns the domain cache backed by domains.data.
func NewDomainsStorage(deps Deps) (*DomainsStorage, error) {
	c, err := newFileCache[domain.Domain](deps, "domains", store.Documents, domainsFileName)
	if err != nil {
		return nil, err
	}
	return &DomainsStorage{fileCache: c}, nil
}

// GetStoredDomains returns the cached domains.
func (s *DomainsStorage) GetStoredDomains() []domain.Domain {
	return s.snapshot()
}

// Domain looks a domain up by name.
func (s *DomainsStorage) Domain(name string) (domain.Domain, bool) {
	key := domain.NormalizeDomainName(name)
	for _, d := range s.snapshot() {
		if d.Key() == key {
			return d, true
		}
	}
	return domain.Domain{}, false
}

// StoreDomains replaces the cache. Unlike the other mutations its failure is
// reported as ErrWritingFailed so callers can treat the store as transactional.
func (s *DomainsStorage) StoreDomains(domains []domain.Domain) error {
	next := dedupeDomains(domains)
	if err := s.mutate(func([]domain.Domain) ([]domain.Domain, error) { return next, nil }); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingFailed, err)
	}
	return nil
}

// UpdateDomainsToCache merges a fresh fetch for one naming service into the
// cache and blocks until it is written.
//
// Fetched domains are merged into their cached entries (or added). A cached
// domain of the same naming service, owned by one of wallets, that the fetch
// no longer returns is removed unless it is claiming.
func (s *DomainsStorage) UpdateDomainsToCache(
	fetched []domain.Domain,
	wallets []domain.Wallet,
	service domain.NamingService,
) error {
	owners := make(map[string]struct{}, len(wallets))
	for _, w := range wallets {
		owners[w.NormalizedAddress()] = struct{}{}
	}
	incoming := dedupeDomains(fetched)
	byKey := make(map[string]domain.Domain, len(incoming))
	for _, d := range incoming {
		byKey[d.Key()] = d
	}

	return s.mutate(func(cur []domain.Domain) ([]domain.Domain, error) {
		out := make([]domain.Domain, 0, len(cur)+len(incoming))
		merged := make(map[string]bool, len(incoming))
		var gone []string

		for _, d := range cur {
			key := d.Key()
			if f, ok := byKey[key]; ok {
				out = append(out, d.Merge(f))
				merged[key] = true
				continue
			}
			if d.NamingService == service && d.IsOwnedBy(owners) && !d.IsClaiming() {
				gone = append(gone, d.Name)
				continue
			}
			out = append(out, d)
		}
		for _, d := range incoming {
			if !merged[d.Key()] {
				out = append(out, d)
			}
		}

		if len(gone) > 0 {
			s.logger.Info("pruned domains missing from fetch",
				zap.String("naming_service", string(service)),
				zap.Strings("domains", gone),
			)
		}
		return out, nil
	})
}

// UpdateDomain merges d into its cached entry, adding it when absent.
func (s *DomainsStorage) UpdateDomain(d domain.Domain) error {
	key := d.Key()
	return s.mutate(func(cur []domain.Domain) ([]domain.Domain, error) {
		for i := range cur {
			if cur[i].Key() == key {
				cur[i] = cur[i].Merge(d)
				return cur, nil
			}
		}
		return append(cur, d), nil
	})
}

// RemoveDomains drops the named domains.
func (s *DomainsStorage) RemoveDomains(names []string) error {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[domain.NormalizeDomainName(n)] = struct{}{}
	}
	return s.mutate(func(cur []domain.Domain) ([]domain.Domain, error) {
		out := make([]domain.Domain, 0, len(cur))
		for _, d := range cur {
			if _, ok := drop[d.Key()]; !ok {
				out = append(out, d)
			}
		}
		return out, nil
	})
}

// PruneUnowned drops domains owned by none of wallets, keeping claiming ones.
// It returns the number of domains removed.
func (s *DomainsStorage) PruneUnowned(wallets []domain.Wallet) (int, error) {
	owners := make(map[string]struct{}, len(wallets))
	for _, w := range wallets {
		owners[w.NormalizedAddress()] = struct{}{}
	}
	removed := 0
	err := s.mutate(func(cur []domain.Domain) ([]domain.Domain, error) {
		out := make([]domain.Domain, 0, len(cur))
		for _, d := range cur {
			if d.IsOwnedBy(owners) || d.IsClaiming() {
				out = append(out, d)
				continue
			}
			removed++
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// dedupeDomains keeps the last record per normalized name, in first-appearance order.
func dedupeDomains(domains []domain.Domain) []domain.Domain {
	index := make(map[string]int, len(domains))
	out := make([]domain.Domain, 0, len(domains))
	for _, d := range domains {
		key := d.Key()
		if i, ok := index[key]; ok {
			out[i] = d
			continue
		}
		index[key] = len(out)
		out = append(out, d)
	}
	return out
}

var _ domain.DomainStore = (*DomainsStorage)(nil)
