package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
	"udwallet/internal/store"
)

func TestKeyedStorage_NFTs(t *testing.T) {
	s, err := cache.NewNFTStorage(newDeps(t))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(
		domain.WalletNFTs{Wallet: addrA, NFTs: []domain.NFT{{TokenID: "1"}}, UpdatedAt: updated},
		domain.WalletNFTs{Wallet: addrB, UpdatedAt: updated},
	))
	require.NoError(t, s.Upsert(domain.WalletNFTs{
		Wallet:    domain.NormalizeAddress(addrA),
		NFTs:      []domain.NFT{{TokenID: "1"}, {TokenID: "2"}},
		UpdatedAt: updated,
	}))

	got, ok := s.Get(addrA)
	require.True(t, ok)
	assert.Len(t, got.NFTs, 2)
	assert.Len(t, s.GetAll(), 2)

	require.NoError(t, s.Remove(addrB))
	_, ok = s.Get(addrB)
	assert.False(t, ok)
}

func TestKeyedStorage_PFPAndBalancesLiveInCaches(t *testing.T) {
	deps := newDeps(t)
	pfp, err := cache.NewPFPStorage(deps)
	require.NoError(t, err)
	t.Cleanup(pfp.Close)
	balances, err := cache.NewBalanceStorage(deps)
	require.NoError(t, err)
	t.Cleanup(balances.Close)

	require.NoError(t, pfp.ReplaceAll([]domain.DomainPFPInfo{{Domain: "A.x", Source: "nft", IsNFT: true}}))
	info, ok := pfp.Get("a.X")
	require.True(t, ok)
	assert.True(t, info.IsNFT)

	require.NoError(t, balances.Upsert(domain.WalletBalance{Wallet: addrA, TotalUSD: "12.50"}))

	// Evicting the caches directory loses both without touching documents.
	deps.Files.Clear(store.Caches)
	assert.Empty(t, pfp.GetAll())
	assert.Empty(t, balances.GetAll())
}
