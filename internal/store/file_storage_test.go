package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

func newFiles(t *testing.T) (*store.FileStorage, string) {
	t.Helper()
	docs := filepath.Join(t.TempDir(), "Documents")
	fs := store.NewFileStorage(map[store.Directory]string{
		store.Documents: docs,
	}, zaptest.NewLogger(t), nil)
	return fs, docs
}

func TestFileStorage_StoreRetrieve_OK(t *testing.T) {
	fs, docs := newFiles(t)

	domains := []domain.Domain{
		{Name: "alice.crypto", OwnerWallet: "0xabc", NamingService: domain.NamingServiceUD},
		{Name: "bob.eth", NamingService: domain.NamingServiceENS, State: domain.DomainStateClaiming},
	}
	require.NoError(t, fs.Store(domains, store.Documents, "domains.data"))
	assert.FileExists(t, filepath.Join(docs, "domains.data"))

	got, err := store.Retrieve[[]domain.Domain](fs, "domains.data", store.Documents)
	require.NoError(t, err)
	assert.Equal(t, domains, got)
}

func TestFileStorage_Retrieve_DistinguishesMissingFromCorrupt(t *testing.T) {
	fs, docs := newFiles(t)

	_, err := store.Retrieve[[]domain.Wallet](fs, "wallets.data", store.Documents)
	assert.ErrorIs(t, err, store.ErrFileNotFound)

	require.NoError(t, os.MkdirAll(docs, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "wallets.data"), []byte("{not json"), 0o600))

	_, err = store.Retrieve[[]domain.Wallet](fs, "wallets.data", store.Documents)
	assert.ErrorIs(t, err, store.ErrDecodeFailed)
	assert.NotErrorIs(t, err, store.ErrFileNotFound)
}

func TestFileStorage_UnconfiguredDirectory(t *testing.T) {
	fs, _ := newFiles(t)

	err := fs.Store([]int{1}, store.Caches, "x.data")
	assert.ErrorIs(t, err, store.ErrNoDirectory)

	_, err = store.Retrieve[[]int](fs, "x.data", store.Caches)
	assert.ErrorIs(t, err, store.ErrNoDirectory)
	assert.False(t, fs.FileExists("x.data", store.Caches))
}

func TestFileStorage_OverwriteRemoveClear(t *testing.T) {
	fs, docs := newFiles(t)

	require.NoError(t, fs.Store([]int{1}, store.Documents, "a.data"))
	require.NoError(t, fs.Store([]int{1, 2}, store.Documents, "a.data"))
	require.NoError(t, fs.Store("b", store.Documents, "b.data"))

	got, err := store.Retrieve[[]int](fs, "a.data", store.Documents)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	require.NoError(t, fs.Remove("a.data", store.Documents))
	require.NoError(t, fs.Remove("a.data", store.Documents))
	assert.False(t, fs.FileExists("a.data", store.Documents))
	assert.True(t, fs.FileExists("b.data", store.Documents))

	fs.Clear(store.Documents)
	entries, err := os.ReadDir(docs)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
