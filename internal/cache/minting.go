package cache

import (
	"context"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const mintingDomainsKey = "MINTING_DOMAINS_ARRAY_KEY"

// MintingDomainsStorage tracks domains whose mint transaction has not settled.
type MintingDomainsStorage struct {
	storage *store.PreferencesStorage[domain.MintingDomain]
}

// NewMintingDomainsStorage returns the minting preference store.
func NewMintingDomainsStorage(deps Deps) (*MintingDomainsStorage, error) {
	s, err := store.NewPreferencesStorage[domain.MintingDomain](
		deps.Prefs, deps.Registry, mintingDomainsKey, deps.logger("minting"), deps.Metrics,
	)
	if err != nil {
		return nil, err
	}
	return &MintingDomainsStorage{storage: s}, nil
}

// GetMintingDomains returns the domains being minted to walletAddress.
func (s *MintingDomainsStorage) GetMintingDomains(walletAddress string) []domain.MintingDomain {
	key := domain.NormalizeAddress(walletAddress)
	var out []domain.MintingDomain
	for _, d := range s.storage.RetrieveAll() {
		if domain.NormalizeAddress(d.WalletAddress) == key {
			out = append(out, d)
		}
	}
	return out
}

// All returns every domain being minted.
func (s *MintingDomainsStorage) All() []domain.MintingDomain {
	return s.storage.RetrieveAll()
}

// Add records domains, replacing an existing entry with the same name.
func (s *MintingDomainsStorage) Add(ctx context.Context, domains []domain.MintingDomain) error {
	for _, d := range domains {
		d.Name = domain.NormalizeDomainName(d.Name)
		name := d.Name
		err := store.Wait(ctx, s.storage.Substitute(func(m domain.MintingDomain) bool {
			return domain.NormalizeDomainName(m.Name) == name
		}, d))
		if err != nil {
			return err
		}
	}
	return nil
}

// Remove forgets the domains named in names.
func (s *MintingDomainsStorage) Remove(ctx context.Context, names []string) error {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[domain.NormalizeDomainName(n)] = struct{}{}
	}
	return s.storage.Remove(ctx, func(m domain.MintingDomain) bool {
		_, ok := drop[domain.NormalizeDomainName(m.Name)]
		return ok
	})
}

// Clear removes every minting record.
func (s *MintingDomainsStorage) Clear() error { return <-s.storage.RemoveAll() }

// Close stops the underlying worker.
func (s *MintingDomainsStorage) Close() { s.storage.Close() }

var _ domain.MintingDomainStore = (*MintingDomainsStorage)(nil)
