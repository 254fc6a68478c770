package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
)

func newTransactions(t *testing.T) *cache.TransactionsStorage {
	t.Helper()
	s, err := cache.NewTransactionsStorage(newDeps(t))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestTransactionsStorage_InjectMergesByID(t *testing.T) {
	s := newTransactions(t)
	require.NoError(t, s.InjectTransactions([]domain.Transaction{
		{ID: "1", DomainName: "a.x", Operation: "mint", Pending: true},
		{ID: "2", DomainName: "b.x", Pending: true},
	}))

	update := []domain.Transaction{
		{ID: "1", Hash: "0xabc", Success: true},
		{ID: "3", DomainName: "a.x", Pending: true},
		{ID: "", DomainName: "ignored.x"},
	}
	require.NoError(t, s.InjectTransactions(update))
	first := s.GetTransactions(nil)

	require.NoError(t, s.InjectTransactions(update))
	assert.Equal(t, first, s.GetTransactions(nil), "injecting the same batch twice changes nothing")

	require.Len(t, first, 3)
	assert.Equal(t, domain.Transaction{
		ID: "1", Hash: "0xabc", DomainName: "a.x", Operation: "mint", Pending: false, Success: true,
	}, first[0])
}

func TestTransactionsStorage_FilterAndReplace(t *testing.T) {
	s := newTransactions(t)
	require.NoError(t, s.ReplaceTransactions([]domain.Transaction{
		{ID: "1", DomainName: "a.x"},
		{ID: "2", DomainName: "B.x"},
		{ID: "3", DomainName: "c.x"},
	}))

	got := s.GetTransactions([]string{"b.X", "a.x"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	require.NoError(t, s.ReplaceTransactions(nil))
	assert.Empty(t, s.GetTransactions(nil))
}
