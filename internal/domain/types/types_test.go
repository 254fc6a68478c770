package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"udwallet/internal/domain/types"
)

const (
	checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	lowered     = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
)

func TestNormalizeAddress(t *testing.T) {
	cases := []struct{ in, want string }{
		{checksummed, lowered},
		{"  " + lowered, lowered},
		{"0X5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", lowered},
		{"bc1QXY2KGDYGJRSQTZQ2N0YRF2493P83KKFJHX0WLH", "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, types.NormalizeAddress(c.in), c.in)
	}
	assert.True(t, types.SameAddress(checksummed, lowered))
	assert.Equal(t, checksummed, types.ChecksumAddress(lowered))
	assert.Equal(t, "not-an-address", types.ChecksumAddress(" not-an-address "))
}

func TestNormalizeDomainName(t *testing.T) {
	assert.Equal(t, "brad.crypto", types.NormalizeDomainName(" Brad.Crypto "))
	// Fullwidth letters fold to ASCII under NFKC.
	assert.Equal(t, "abc.x", types.NormalizeDomainName("ａｂｃ.x"))
}

func TestDuplicatePreference_Order(t *testing.T) {
	assert.Less(t, types.WalletGeneratedLocally.DuplicatePreference(), types.WalletImportedBySeed.DuplicatePreference())
	assert.Less(t, types.WalletImportedBySeed.DuplicatePreference(), types.WalletImportedByPrivateKey.DuplicatePreference())
	assert.Less(t, types.WalletImportedByPrivateKey.DuplicatePreference(), types.WalletExternal.DuplicatePreference())
}

func TestDomainMerge(t *testing.T) {
	order := 3
	cached := types.Domain{
		Name:          "a.x",
		OwnerWallet:   "0x1",
		NamingService: types.NamingServiceUD,
		State:         types.DomainStateClaiming,
		PFPSource:     "nft",
		ReverseFor:    "0x1",
		Order:         &order,
	}
	fetched := types.Domain{Name: "a.x", OwnerWallet: "0x2", BlockchainType: "MATIC"}

	got := cached.Merge(fetched)
	assert.Equal(t, "0x2", got.OwnerWallet)
	assert.Equal(t, "MATIC", got.BlockchainType)
	assert.Equal(t, types.DomainStateClaiming, got.State)
	assert.Equal(t, "nft", got.PFPSource)
	assert.Equal(t, &order, got.Order)
	assert.Empty(t, got.ReverseFor, "reverse resolution always follows the fetch")
}

func TestDomainIsOwnedBy(t *testing.T) {
	d := types.Domain{Name: "a.x", OwnerWallet: checksummed}
	assert.True(t, d.IsOwnedBy(map[string]struct{}{lowered: {}}))
	assert.False(t, d.IsOwnedBy(map[string]struct{}{"0xother": {}}))
}

func TestTransactionMerge_Idempotent(t *testing.T) {
	cached := types.Transaction{ID: "1", DomainName: "a.x", Operation: "mint", Pending: true}
	incoming := types.Transaction{ID: "1", Hash: "0xabc", Pending: false, Success: true}

	once := cached.Merge(incoming)
	twice := once.Merge(incoming)
	assert.Equal(t, once, twice)
	assert.Equal(t, types.Transaction{
		ID: "1", Hash: "0xabc", DomainName: "a.x", Operation: "mint", Pending: false, Success: true,
	}, once)

	// A stale pending report does not reopen a settled transaction.
	stale := types.Transaction{ID: "1", Pending: true}
	assert.False(t, once.Merge(stale).Pending)
	assert.True(t, once.Merge(stale).Success)
}

func TestTimedSignature_IsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := types.TimedSignature{Expires: now}
	assert.True(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(time.Second)))
	assert.False(t, s.IsExpired(now.Add(-time.Second)))
}
