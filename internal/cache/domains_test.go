package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
)

func newDomains(t *testing.T, deps cache.Deps) *cache.DomainsStorage {
	t.Helper()
	s, err := cache.NewDomainsStorage(deps)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func domainNames(ds []domain.Domain) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}

func TestDomainsStorage_UpdateDomainsToCache(t *testing.T) {
	s := newDomains(t, newDeps(t))
	wallets := []domain.Wallet{{Address: addrA}}

	require.NoError(t, s.StoreDomains([]domain.Domain{
		{Name: "kept.x", OwnerWallet: addrA, NamingService: domain.NamingServiceUD, PFPSource: "nft"},
		{Name: "gone.x", OwnerWallet: addrA, NamingService: domain.NamingServiceUD},
		{Name: "claiming.x", OwnerWallet: addrA, NamingService: domain.NamingServiceUD, State: domain.DomainStateClaiming},
		{Name: "ens.eth", OwnerWallet: addrA, NamingService: domain.NamingServiceENS},
		{Name: "other.x", OwnerWallet: addrB, NamingService: domain.NamingServiceUD},
	}))

	fetched := []domain.Domain{
		{Name: "Kept.X", OwnerWallet: addrA, NamingService: domain.NamingServiceUD, BlockchainType: "MATIC"},
		{Name: "new.x", OwnerWallet: addrA, NamingService: domain.NamingServiceUD},
	}
	require.NoError(t, s.UpdateDomainsToCache(fetched, wallets, domain.NamingServiceUD))

	got := s.GetStoredDomains()
	assert.Equal(t, []string{"kept.x", "claiming.x", "ens.eth", "other.x", "new.x"}, domainNames(got))

	kept, ok := s.Domain("KEPT.x")
	require.True(t, ok)
	assert.Equal(t, "MATIC", kept.BlockchainType)
	assert.Equal(t, "nft", kept.PFPSource, "local-only fields survive the merge")
}

func TestDomainsStorage_ClaimingSurvivesPrune(t *testing.T) {
	s := newDomains(t, newDeps(t))
	require.NoError(t, s.StoreDomains([]domain.Domain{
		{Name: "claiming.x", OwnerWallet: addrB, State: domain.DomainStateClaiming},
		{Name: "orphan.x", OwnerWallet: addrB},
		{Name: "mine.x", OwnerWallet: addrA},
	}))

	n, err := s.PruneUnowned([]domain.Wallet{{Address: addrA}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"claiming.x", "mine.x"}, domainNames(s.GetStoredDomains()))
}

func TestDomainsStorage_UpdateAndRemove(t *testing.T) {
	s := newDomains(t, newDeps(t))
	require.NoError(t, s.UpdateDomain(domain.Domain{Name: "a.x", OwnerWallet: addrA}))
	require.NoError(t, s.UpdateDomain(domain.Domain{Name: "A.x", State: domain.DomainStateMinting}))
	require.NoError(t, s.UpdateDomain(domain.Domain{Name: "b.x"}))

	a, ok := s.Domain("a.x")
	require.True(t, ok)
	assert.Equal(t, addrA, a.OwnerWallet)
	assert.Equal(t, domain.DomainStateMinting, a.State)

	require.NoError(t, s.RemoveDomains([]string{"A.X"}))
	assert.Equal(t, []string{"b.x"}, domainNames(s.GetStoredDomains()))
}

func TestDomainsStorage_StoreDomainsDeduplicates(t *testing.T) {
	s := newDomains(t, newDeps(t))
	require.NoError(t, s.StoreDomains([]domain.Domain{
		{Name: "a.x", OwnerWallet: "old"},
		{Name: "b.x"},
		{Name: "A.X", OwnerWallet: "new"},
	}))
	got := s.GetStoredDomains()
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].OwnerWallet)
}
